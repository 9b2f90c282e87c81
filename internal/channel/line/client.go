package line

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"dinner-suggestion-bot/internal/infrastructure/config"
	"dinner-suggestion-bot/internal/pkg/common"
)

const apiBaseURL = "https://api.line.me/v2/bot"

// WebhookPayload LINE webhook 請求本體
type WebhookPayload struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event 單一 webhook 事件
type Event struct {
	Type       string       `json:"type"`
	ReplyToken string       `json:"replyToken"`
	Source     Source       `json:"source"`
	Timestamp  int64        `json:"timestamp"`
	Message    EventMessage `json:"message"`
}

// Source 事件來源
type Source struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// EventMessage 事件中的訊息內容
type EventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// Message 回覆訊息（text 或 flex）
type Message interface {
	messageType() string
}

// TextMessage 純文字訊息
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (TextMessage) messageType() string { return "text" }

// NewTextMessage 創建純文字訊息
func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

// FlexMessage Flex 訊息
type FlexMessage struct {
	Type     string  `json:"type"`
	AltText  string  `json:"altText"`
	Contents *Bubble `json:"contents"`
}

func (FlexMessage) messageType() string { return "flex" }

// Client LINE Messaging API 客戶端
type Client struct {
	client        *resty.Client
	channelSecret string
}

// NewClient 創建 LINE 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Line.ChannelAccessToken)).
		SetHeader("Content-Type", "application/json")

	return &Client{
		client:        client,
		channelSecret: cfg.Line.ChannelSecret,
	}
}

// ValidateSignature 驗證 webhook 簽名（body 的 HMAC-SHA256，Base64 編碼）。
// 未設定 channel secret 時跳過驗證。
func (c *Client) ValidateSignature(body []byte, signature string) bool {
	if c.channelSecret == "" {
		common.LogWarn("LINE channel secret 未設定，跳過簽名驗證")
		return true
	}
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Reply 以 reply token 回覆訊息（單次嘗試，token 有效期由平台控制）
func (c *Client) Reply(ctx context.Context, replyToken string, messages ...Message) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"replyToken": replyToken,
			"messages":   messages,
		}).
		Post("/message/reply")

	if err != nil {
		return fmt.Errorf("failed to send reply to LINE: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("LINE reply API returned %d: %s", resp.StatusCode(), resp.String())
	}

	common.LogInfo("LINE 回覆已送出",
		zap.Int("訊息數", len(messages)),
	)
	return nil
}
