package webhook

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinner-suggestion-bot/internal/channel/slack"
	"dinner-suggestion-bot/internal/core/pantry"
	"dinner-suggestion-bot/internal/core/suggest"
	"dinner-suggestion-bot/internal/infrastructure/config"
	"dinner-suggestion-bot/internal/pkg/common"
)

// 即時確認訊息（同步路徑必須在平台時限內回覆）
const generatingMessage = "🍽️ レシピを生成中です... 少々お待ちください！"

// SlackPoster Slack 發送端介面
type SlackPoster interface {
	ValidateSignature(body []byte, timestamp, signature string) bool
	PostMessage(ctx context.Context, channelID, text string, blocks []slack.Block) error
	Respond(ctx context.Context, responseURL string, payload *slack.ResponsePayload) error
}

// SlackHandler Slack webhook 處理器。
// slash command 採兩階段：同步路徑只解析與入列，生成與遞送由派發器執行。
type SlackHandler struct {
	client     SlackPoster
	service    *suggest.Service
	pantry     *pantry.Store
	dispatcher *slack.Dispatcher
}

// NewSlackHandler 創建 Slack 處理器（派發器須由呼叫端 Start）
func NewSlackHandler(cfg *config.Config, client SlackPoster, service *suggest.Service, store *pantry.Store) *SlackHandler {
	h := &SlackHandler{
		client:  client,
		service: service,
		pantry:  store,
	}
	h.dispatcher = slack.NewDispatcher(cfg, h.processJob)
	return h
}

// Dispatcher 取得任務派發器（啟動、關閉與狀態查詢用）
func (h *SlackHandler) Dispatcher() *slack.Dispatcher {
	return h.dispatcher
}

// HandleSlashCommand 處理 /dinner slash command
func (h *SlackHandler) HandleSlashCommand(c *gin.Context, body []byte) {
	if !h.verifySignature(c, body) {
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		common.LogError("slash command 解析失敗", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form body"})
		return
	}

	text := strings.TrimSpace(form.Get("text"))
	responseURL := form.Get("response_url")
	userID := form.Get("user_id")
	channelID := form.Get("channel_id")

	common.LogInfo("收到 slash command",
		zap.String("user_id", userID),
		zap.Int("輸入長度", len([]rune(text))),
	)

	// 未帶文字時回覆使用說明
	if text == "" {
		helpText, helpBlocks := slack.HelpBlocks()
		c.JSON(http.StatusOK, slack.ResponsePayload{
			ResponseType: "ephemeral",
			Text:         helpText,
			Blocks:       helpBlocks,
		})
		return
	}

	// 食材清單子指令在同步路徑內完成，不經過模型
	if payload, handled := h.handlePantryCommand(c.Request.Context(), userID, text); handled {
		c.JSON(http.StatusOK, payload)
		return
	}

	// 生成任務入列，同步路徑立即確認
	job := &slack.Job{
		Text:        text,
		ResponseURL: responseURL,
		UserID:      userID,
		ChannelID:   channelID,
	}
	if err := h.dispatcher.Enqueue(job); err != nil {
		common.LogWarn("任務入列失敗", zap.Error(err))
		c.JSON(http.StatusOK, slack.ResponsePayload{
			ResponseType: "ephemeral",
			Text:         "⏳ 現在リクエストが混み合っています。少し時間をおいてからお試しください。",
		})
		return
	}

	c.JSON(http.StatusOK, slack.ResponsePayload{
		ResponseType: "in_channel",
		Text:         generatingMessage,
	})
}

// handlePantryCommand 處理 add / list / clear 子指令
func (h *SlackHandler) handlePantryCommand(ctx context.Context, userID, text string) (*slack.ResponsePayload, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}

	sub := strings.ToLower(fields[0])
	if sub != "add" && sub != "list" && sub != "clear" {
		return nil, false
	}

	if h.pantry == nil {
		return &slack.ResponsePayload{
			ResponseType: "ephemeral",
			Text:         "⚠️ 食材リスト機能は現在利用できません。",
		}, true
	}

	switch sub {
	case "add":
		items := splitIngredients(strings.Join(fields[1:], " "))
		if len(items) == 0 {
			return &slack.ResponsePayload{
				ResponseType: "ephemeral",
				Text:         "使用方法: `/dinner add キャベツ 鶏肉`",
			}, true
		}
		merged, err := h.pantry.Add(ctx, userID, items)
		if err != nil {
			common.LogError("食材新增失敗", zap.Error(err))
			return pantryErrorPayload(), true
		}
		return &slack.ResponsePayload{
			ResponseType: "ephemeral",
			Text:         "✅ 食材を追加しました！\n\n" + pantry.FormatList(merged),
		}, true

	case "list":
		items, err := h.pantry.Get(ctx, userID)
		if err != nil {
			common.LogError("食材取得失敗", zap.Error(err))
			return pantryErrorPayload(), true
		}
		return &slack.ResponsePayload{
			ResponseType: "ephemeral",
			Text:         pantry.FormatList(items),
		}, true

	default: // clear
		if err := h.pantry.Clear(ctx, userID); err != nil {
			common.LogError("食材清空失敗", zap.Error(err))
			return pantryErrorPayload(), true
		}
		return &slack.ResponsePayload{
			ResponseType: "ephemeral",
			Text:         "🗑️ 冷蔵庫を空にしました。",
		}, true
	}
}

// splitIngredients 以空白或頓號切分食材
func splitIngredients(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '　' || r == '、' || r == ','
	})
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func pantryErrorPayload() *slack.ResponsePayload {
	return &slack.ResponsePayload{
		ResponseType: "ephemeral",
		Text:         "⚠️ 食材リストの操作に失敗しました。もう一度お試しください。",
	}
}

// HandleEvent 處理 Slack 事件回呼（app_mention、DM）
func (h *SlackHandler) HandleEvent(c *gin.Context, body []byte) {
	if !h.verifySignature(c, body) {
		return
	}

	var callback struct {
		Type      string `json:"type"`
		Challenge string `json:"challenge"`
		Event     struct {
			Type        string `json:"type"`
			Text        string `json:"text"`
			User        string `json:"user"`
			Channel     string `json:"channel"`
			ChannelType string `json:"channel_type"`
			BotID       string `json:"bot_id"`
		} `json:"event"`
	}
	if err := common.ParseJSONBytes(body, &callback); err != nil {
		common.LogError("Slack 事件解析失敗", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	// URL 驗證：原樣回傳 challenge
	if callback.Type == "url_verification" {
		c.JSON(http.StatusOK, gin.H{"challenge": callback.Challenge})
		return
	}

	event := callback.Event

	// 只處理 app_mention 與 DM；bot 自身的訊息忽略以避免迴圈
	isMention := event.Type == "app_mention"
	isDirectMessage := event.Type == "message" && event.ChannelType == "im"
	if (!isMention && !isDirectMessage) || event.BotID != "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	text := slack.StripMention(event.Text)
	common.LogInfo("收到 Slack 事件",
		zap.String("event_type", event.Type),
		zap.String("user_id", event.User),
		zap.Int("輸入長度", len([]rune(text))),
	)

	if text == "" {
		helpText, helpBlocks := slack.HelpBlocks()
		if err := h.client.PostMessage(c.Request.Context(), event.Channel, helpText, helpBlocks); err != nil {
			common.LogError("Slack 說明送出失敗", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	job := &slack.Job{
		Text:      text,
		UserID:    event.User,
		ChannelID: event.Channel,
	}
	if err := h.dispatcher.Enqueue(job); err != nil {
		common.LogWarn("任務入列失敗", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// verifySignature 驗證請求簽名，失敗回 401
func (h *SlackHandler) verifySignature(c *gin.Context, body []byte) bool {
	valid := h.client.ValidateSignature(
		body,
		c.GetHeader("X-Slack-Request-Timestamp"),
		c.GetHeader("X-Slack-Signature"),
	)
	if !valid {
		common.LogError("Slack 簽名驗證失敗")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return valid
}

// processJob 延遲階段：生成菜單並遞送結果（單次嘗試）
func (h *SlackHandler) processJob(ctx context.Context, job *slack.Job) {
	set := h.service.Generate(ctx, job.Text, suggest.ChannelSlack)

	var payload *slack.ResponsePayload
	if set.Success && len(set.Recipes) > 0 {
		payload = &slack.ResponsePayload{
			ResponseType:    "in_channel",
			ReplaceOriginal: true,
			Text:            fmt.Sprintf("🍽️ %s のレシピ提案完了！", job.Text),
			Blocks:          slack.RecipeBlocks(set.Recipes, set.InputType),
		}
	} else {
		errorText := set.Error
		if errorText == "" {
			errorText = "レシピが見つかりませんでした。もう一度お試しください。"
		}
		payload = &slack.ResponsePayload{
			ResponseType:    "in_channel",
			ReplaceOriginal: true,
			Text:            "❌ レシピ生成に失敗しました: " + errorText,
		}
	}

	// 遞送結果：slash command 走 response_url，事件走 chat.postMessage
	var err error
	if job.ResponseURL != "" {
		err = h.client.Respond(ctx, job.ResponseURL, payload)
	} else {
		err = h.client.PostMessage(ctx, job.ChannelID, payload.Text, payload.Blocks)
	}
	if err != nil {
		common.LogError("Slack 結果遞送失敗",
			zap.Error(err),
			zap.String("user_id", job.UserID),
		)
	}
}
