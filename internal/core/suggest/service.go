package suggest

import (
	"context"
	"time"

	"dinner-suggestion-bot/internal/pkg/common"

	"go.uber.org/zap"
)

// CompletionCache 提示詞 → 模型輸出的快取
type CompletionCache interface {
	Get(ctx context.Context, prompt string) (string, error)
	Set(ctx context.Context, prompt, value string) error
}

// Service 菜單生成協調器：分類 → 組提示詞 → 調用模型 → 解析
type Service struct {
	gateway CompletionGateway
	cache   CompletionCache
}

// NewService 創建菜單生成服務（cache 可為 nil）
func NewService(gateway CompletionGateway, cache CompletionCache) *Service {
	return &Service{
		gateway: gateway,
		cache:   cache,
	}
}

// Generate 依使用者輸入生成菜單提案。
// 失敗以 RecipeSet.Success=false 與使用者訊息表達，不回傳 error。
func (s *Service) Generate(ctx context.Context, rawText string, channel Channel) *RecipeSet {
	kind := Classify(rawText)
	prompt := BuildPrompt(rawText, kind)
	requestID := common.GenerateUUID()

	common.LogInfo("開始生成菜單",
		zap.String("request_id", requestID),
		zap.String("頻道", string(channel)),
		zap.String("輸入類型", string(kind)),
		zap.Int("輸入長度", len([]rune(rawText))),
	)

	// 相同提示詞直接使用快取的模型輸出
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, prompt.Text); err == nil {
			return &RecipeSet{
				Success:   true,
				Recipes:   ParseRecipes(cached),
				InputType: kind,
			}
		}
	}

	start := time.Now()
	result := s.gateway.Complete(ctx, prompt.Text)
	common.LogAICall(time.Since(start), string(result.Outcome), requestID)

	if result.Outcome != OutcomeOK {
		return &RecipeSet{
			Success:   false,
			Error:     FailureMessage(result.Outcome),
			InputType: kind,
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, prompt.Text, result.Text); err != nil {
			common.LogWarn("快取寫入失敗", zap.Error(err))
		}
	}

	return &RecipeSet{
		Success:   true,
		Recipes:   ParseRecipes(result.Text),
		InputType: kind,
	}
}
