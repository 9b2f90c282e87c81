package slack

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"dinner-suggestion-bot/internal/infrastructure/config"
	"dinner-suggestion-bot/internal/pkg/common"
)

const apiBaseURL = "https://slack.com/api"

// 簽名時間戳的容許偏差（防重放）
const signatureMaxAge = 5 * time.Minute

// ResponsePayload 回覆 response_url 或即時回應的 JSON 本體
type ResponsePayload struct {
	ResponseType    string  `json:"response_type"`
	ReplaceOriginal bool    `json:"replace_original,omitempty"`
	Text            string  `json:"text"`
	Blocks          []Block `json:"blocks,omitempty"`
}

// apiResponse Slack Web API 的共通回應欄位
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Client Slack Web API 客戶端
type Client struct {
	client        *resty.Client
	signingSecret string
}

// NewClient 創建 Slack 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Slack.BotToken)).
		SetHeader("Content-Type", "application/json; charset=utf-8")

	return &Client{
		client:        client,
		signingSecret: cfg.Slack.SigningSecret,
	}
}

// ValidateSignature 驗證請求簽名（v0 方案：HMAC-SHA256("v0:{ts}:{body}")）。
// 未設定 signing secret 時跳過驗證。
func (c *Client) ValidateSignature(body []byte, timestamp, signature string) bool {
	if c.signingSecret == "" {
		common.LogWarn("Slack signing secret 未設定，跳過簽名驗證")
		return true
	}
	if timestamp == "" || signature == "" {
		return false
	}

	// 檢查時間戳防止重放
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	if math.Abs(float64(time.Now().Unix()-ts)) > signatureMaxAge.Seconds() {
		return false
	}

	base := fmt.Sprintf("v0:%s:%s", timestamp, string(body))
	mac := hmac.New(sha256.New, []byte(c.signingSecret))
	mac.Write([]byte(base))
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// PostMessage 透過 chat.postMessage 發送訊息到頻道
func (c *Client) PostMessage(ctx context.Context, channelID, text string, blocks []Block) error {
	body := map[string]interface{}{
		"channel": channelID,
		"text":    text,
	}
	if len(blocks) > 0 {
		body["blocks"] = blocks
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat.postMessage")

	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("Slack API returned %d: %s", resp.StatusCode(), resp.String())
	}

	var result apiResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return fmt.Errorf("failed to parse Slack API response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("Slack API error: %s", result.Error)
	}

	common.LogInfo("Slack 訊息已送出",
		zap.String("channel_id", channelID),
	)
	return nil
}

// Respond 將結果 POST 到 slash command 的 response_url（一次性回呼，單次嘗試）
func (c *Client) Respond(ctx context.Context, responseURL string, payload *ResponsePayload) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(responseURL)

	if err != nil {
		return fmt.Errorf("failed to post to response_url: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("response_url returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
