package suggest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway 以固定結果回應並統計調用次數
type stubGateway struct {
	result *CompletionResult
	calls  int
}

func (g *stubGateway) Complete(ctx context.Context, prompt string) *CompletionResult {
	g.calls++
	return g.result
}

// mapCache 測試用的記憶體快取
type mapCache struct {
	store map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{store: make(map[string]string)}
}

func (c *mapCache) Get(ctx context.Context, prompt string) (string, error) {
	if v, ok := c.store[prompt]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss")
}

func (c *mapCache) Set(ctx context.Context, prompt, value string) error {
	c.store[prompt] = value
	return nil
}

func TestGenerateSuccess(t *testing.T) {
	completion := "1. 鶏肉炒め\n   - 塩コショウで味付け\n2. 魚の煮付け\n   - 醤油で煮込む"
	gateway := &stubGateway{result: &CompletionResult{Outcome: OutcomeOK, Text: completion}}
	svc := NewService(gateway, nil)

	set := svc.Generate(context.Background(), "キャベツと鶏肉、にんじん", ChannelLine)

	require.True(t, set.Success)
	assert.Empty(t, set.Error)
	assert.Equal(t, KindIngredient, set.InputType)
	// 解析結果與 ParseRecipes 完全一致，不做額外加工
	assert.Equal(t, ParseRecipes(completion), set.Recipes)
	assert.Equal(t, 1, gateway.calls)
}

func TestGenerateFailureOutcomes(t *testing.T) {
	tests := []struct {
		outcome Outcome
	}{
		{OutcomeThrottled},
		{OutcomeModelNotReady},
		{OutcomeInvalidFormat},
		{OutcomeUnknownError},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			gateway := &stubGateway{result: &CompletionResult{Outcome: tt.outcome}}
			svc := NewService(gateway, nil)

			set := svc.Generate(context.Background(), "さっぱりしたものが食べたい", ChannelSlack)

			assert.False(t, set.Success)
			assert.Empty(t, set.Recipes)
			assert.Equal(t, FailureMessage(tt.outcome), set.Error)
			assert.Equal(t, KindMood, set.InputType)
		})
	}
}

func TestGenerateUsesCache(t *testing.T) {
	completion := "1. 親子丼\n   - 鶏肉と卵の定番丼"
	gateway := &stubGateway{result: &CompletionResult{Outcome: OutcomeOK, Text: completion}}
	svc := NewService(gateway, newMapCache())

	first := svc.Generate(context.Background(), "鶏肉と卵", ChannelLine)
	second := svc.Generate(context.Background(), "鶏肉と卵", ChannelLine)

	assert.Equal(t, 1, gateway.calls, "第二次請求應命中快取")
	assert.Equal(t, first.Recipes, second.Recipes)
}

func TestGenerateFailureNotCached(t *testing.T) {
	gateway := &stubGateway{result: &CompletionResult{Outcome: OutcomeThrottled}}
	svc := NewService(gateway, newMapCache())

	svc.Generate(context.Background(), "キャベツ", ChannelLine)
	svc.Generate(context.Background(), "キャベツ", ChannelLine)

	assert.Equal(t, 2, gateway.calls, "失敗結果不得寫入快取")
}
