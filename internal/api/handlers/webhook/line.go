package webhook

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinner-suggestion-bot/internal/channel/line"
	"dinner-suggestion-bot/internal/core/suggest"
	"dinner-suggestion-bot/internal/pkg/common"
)

// LineReplier LINE 回覆端介面
type LineReplier interface {
	ValidateSignature(body []byte, signature string) bool
	Reply(ctx context.Context, replyToken string, messages ...line.Message) error
}

// LineHandler LINE webhook 處理器（同步路徑：收到即生成並回覆）
type LineHandler struct {
	client  LineReplier
	service *suggest.Service
	useFlex bool
}

// NewLineHandler 創建 LINE 處理器
func NewLineHandler(client LineReplier, service *suggest.Service, useFlex bool) *LineHandler {
	return &LineHandler{
		client:  client,
		service: service,
		useFlex: useFlex,
	}
}

// HandleWebhook 處理 LINE webhook 請求
func (h *LineHandler) HandleWebhook(c *gin.Context, body []byte) {
	if !h.client.ValidateSignature(body, c.GetHeader("X-Line-Signature")) {
		common.LogError("LINE 簽名驗證失敗")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	var payload line.WebhookPayload
	if err := common.ParseJSONBytes(body, &payload); err != nil {
		common.LogError("LINE webhook 解析失敗", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
		return
	}

	for _, event := range payload.Events {
		if event.Type != "message" || event.Message.Type != "text" {
			continue
		}
		h.handleTextMessage(c.Request.Context(), &event)
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// handleTextMessage 處理單一文字訊息事件
func (h *LineHandler) handleTextMessage(ctx context.Context, event *line.Event) {
	common.LogInfo("收到 LINE 訊息",
		zap.String("user_id", event.Source.UserID),
		zap.Int("輸入長度", len([]rune(event.Message.Text))),
	)

	set := h.service.Generate(ctx, event.Message.Text, suggest.ChannelLine)

	var reply line.Message
	switch {
	case !set.Success:
		reply = line.NewTextMessage(set.Error)
	case h.useFlex && len(set.Recipes) > 0:
		reply = line.NewRecipeFlexMessage(set.Recipes)
	default:
		reply = line.NewTextMessage(formatRecipesAsText(set.Recipes))
	}

	// reply token 單次有效且有時限，失敗只記錄不再嘗試
	if err := h.client.Reply(ctx, event.ReplyToken, reply); err != nil {
		common.LogError("LINE 回覆送出失敗",
			zap.Error(err),
			zap.String("user_id", event.Source.UserID),
		)
	}
}

// formatRecipesAsText 純文字渲染（Flex 關閉時的後援格式）
func formatRecipesAsText(recipes []suggest.Recipe) string {
	if len(recipes) == 0 {
		return "レシピが見つかりませんでした。もう一度お試しください。"
	}

	var b strings.Builder
	b.WriteString("🍽️ メニュー提案\n\n")
	for _, recipe := range recipes {
		b.WriteString(recipe.Number)
		b.WriteString(". ")
		b.WriteString(recipe.Name)
		b.WriteString("\n   - ")
		b.WriteString(recipe.Description)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}
