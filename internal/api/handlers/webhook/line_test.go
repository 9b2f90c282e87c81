package webhook

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-suggestion-bot/internal/channel/line"
	"dinner-suggestion-bot/internal/core/suggest"
)

// mockReplier 記錄回覆內容的 LINE 客戶端
type mockReplier struct {
	valid    bool
	replies  []line.Message
	tokens   []string
	replyErr error
}

func (m *mockReplier) ValidateSignature(body []byte, signature string) bool {
	return m.valid
}

func (m *mockReplier) Reply(ctx context.Context, replyToken string, messages ...line.Message) error {
	m.tokens = append(m.tokens, replyToken)
	m.replies = append(m.replies, messages...)
	return m.replyErr
}

func lineWebhookBody(text string) string {
	return `{"destination":"U0000","events":[{"type":"message","replyToken":"token-1","source":{"type":"user","userId":"U123"},"message":{"id":"1","type":"text","text":"` + text + `"}}]}`
}

func TestLineWebhookTextReply(t *testing.T) {
	gateway := &countingGateway{text: "1. 鶏肉炒め\n   - 塩コショウで味付け\n2. 野菜スープ\n   - キャベツたっぷり"}
	replier := &mockReplier{valid: true}
	h := NewLineHandler(replier, suggest.NewService(gateway, nil), false)

	body := lineWebhookBody("キャベツと鶏肉")
	c, w := newTestContext(t, body)
	h.HandleWebhook(c, []byte(body))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, replier.replies, 1)
	assert.Equal(t, []string{"token-1"}, replier.tokens)

	msg, ok := replier.replies[0].(line.TextMessage)
	require.True(t, ok, "Flex 關閉時應回覆純文字")
	assert.Contains(t, msg.Text, "🍽️ メニュー提案")
	assert.Contains(t, msg.Text, "1. 鶏肉炒め")
	assert.Contains(t, msg.Text, "- 塩コショウで味付け")
	assert.Contains(t, msg.Text, "2. 野菜スープ")
}

func TestLineWebhookFlexReply(t *testing.T) {
	gateway := &countingGateway{text: "1. 親子丼\n   - 鶏肉と卵の定番丼"}
	replier := &mockReplier{valid: true}
	h := NewLineHandler(replier, suggest.NewService(gateway, nil), true)

	body := lineWebhookBody("親子丼が食べたい")
	c, _ := newTestContext(t, body)
	h.HandleWebhook(c, []byte(body))

	require.Len(t, replier.replies, 1)
	msg, ok := replier.replies[0].(line.FlexMessage)
	require.True(t, ok, "Flex 開啟時應回覆 Flex 訊息")
	assert.Equal(t, "晩御飯メニュー提案", msg.AltText)
	require.NotNil(t, msg.Contents)
	assert.Equal(t, "bubble", msg.Contents.Type)
}

func TestLineWebhookFailureMessage(t *testing.T) {
	gateway := &failingGateway{outcome: suggest.OutcomeThrottled}
	replier := &mockReplier{valid: true}
	h := NewLineHandler(replier, suggest.NewService(gateway, nil), true)

	body := lineWebhookBody("キャベツ")
	c, w := newTestContext(t, body)
	h.HandleWebhook(c, []byte(body))

	assert.Equal(t, http.StatusOK, w.Code, "生成失敗でも webhook 自体は 200")
	require.Len(t, replier.replies, 1)
	msg, ok := replier.replies[0].(line.TextMessage)
	require.True(t, ok)
	assert.Equal(t, suggest.FailureMessage(suggest.OutcomeThrottled), msg.Text)
}

func TestLineWebhookInvalidSignature(t *testing.T) {
	gateway := &countingGateway{}
	replier := &mockReplier{valid: false}
	h := NewLineHandler(replier, suggest.NewService(gateway, nil), false)

	body := lineWebhookBody("キャベツ")
	c, w := newTestContext(t, body)
	h.HandleWebhook(c, []byte(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, replier.replies)
	assert.Equal(t, int32(0), gateway.callCount())
}

func TestLineWebhookSkipsNonTextEvents(t *testing.T) {
	gateway := &countingGateway{}
	replier := &mockReplier{valid: true}
	h := NewLineHandler(replier, suggest.NewService(gateway, nil), false)

	body := `{"destination":"U0000","events":[{"type":"message","replyToken":"t1","message":{"id":"1","type":"image"}},{"type":"follow","replyToken":"t2"}]}`
	c, w := newTestContext(t, body)
	h.HandleWebhook(c, []byte(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, replier.replies)
	assert.Equal(t, int32(0), gateway.callCount())
}

func TestLineWebhookReplyFailureSwallowed(t *testing.T) {
	gateway := &countingGateway{text: "1. 麻婆豆腐\n   - ピリ辛でご飯が進む"}
	replier := &mockReplier{valid: true, replyErr: assert.AnError}
	h := NewLineHandler(replier, suggest.NewService(gateway, nil), false)

	body := lineWebhookBody("麻婆豆腐")
	c, w := newTestContext(t, body)
	h.HandleWebhook(c, []byte(body))

	assert.Equal(t, http.StatusOK, w.Code, "回覆失敗只記錄，不影響 webhook 回應")
}

// failingGateway 固定回傳指定失敗結果
type failingGateway struct {
	outcome suggest.Outcome
}

func (g *failingGateway) Complete(ctx context.Context, prompt string) *suggest.CompletionResult {
	return &suggest.CompletionResult{Outcome: g.outcome}
}
