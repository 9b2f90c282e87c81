package webhook

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinner-suggestion-bot/internal/core/suggest"
	"dinner-suggestion-bot/internal/pkg/common"
)

// Handler 共用 webhook 入口，依請求特徵路由到對應頻道
type Handler struct {
	line  *LineHandler
	slack *SlackHandler
}

// NewHandler 創建 webhook 處理器
func NewHandler(lineHandler *LineHandler, slackHandler *SlackHandler) *Handler {
	return &Handler{
		line:  lineHandler,
		slack: slackHandler,
	}
}

// DetectChannel 判定請求來源頻道。
// 先看簽名標頭，再退回本體形狀；無法判定回傳空字串。
func DetectChannel(header http.Header, body []byte) suggest.Channel {
	if header.Get("X-Line-Signature") != "" {
		return suggest.ChannelLine
	}
	if header.Get("X-Slack-Signature") != "" {
		return suggest.ChannelSlack
	}

	text := string(body)

	// URL-encoded 的 slash command
	if strings.Contains(text, "command=") && strings.Contains(text, "text=") {
		return suggest.ChannelSlack
	}

	var shape struct {
		Events []json.RawMessage `json:"events"`
		Type   *string           `json:"type"`
		Event  *json.RawMessage  `json:"event"`
	}
	if err := json.Unmarshal(body, &shape); err == nil {
		if shape.Events != nil {
			return suggest.ChannelLine
		}
		if shape.Type != nil || shape.Event != nil {
			return suggest.ChannelSlack
		}
	}

	return ""
}

// Handle 處理 POST /webhook
func (h *Handler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		common.LogError("讀取請求本體失敗", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	channel := DetectChannel(c.Request.Header, body)
	if channel == "" {
		common.LogWarn("無法辨識訊息來源",
			zap.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not detect channel"})
		return
	}

	common.LogInfo("收到 webhook 請求",
		zap.String("頻道", string(channel)),
		zap.String("request_id", c.GetHeader("X-Request-ID")),
	)

	switch channel {
	case suggest.ChannelLine:
		h.line.HandleWebhook(c, body)
	case suggest.ChannelSlack:
		// slash command 為 URL-encoded，事件回呼為 JSON
		if strings.Contains(string(body), "command=") {
			h.slack.HandleSlashCommand(c, body)
		} else {
			h.slack.HandleEvent(c, body)
		}
	}
}
