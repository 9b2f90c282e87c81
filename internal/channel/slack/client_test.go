package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dinner-suggestion-bot/internal/infrastructure/config"
)

func signingClient(secret string) *Client {
	return NewClient(&config.Config{
		Slack: config.SlackConfig{BotToken: "xoxb-test", SigningSecret: secret},
	})
}

func signBody(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("v0:%s:%s", timestamp, string(body))))
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	const secret = "8f742231b10e8888abcd99yyyzzz85a5"
	client := signingClient(secret)
	body := []byte("command=%2Fdinner&text=%E3%82%AD%E3%83%A3%E3%83%99%E3%83%84")
	now := strconv.FormatInt(time.Now().Unix(), 10)

	t.Run("正しい簽名", func(t *testing.T) {
		assert.True(t, client.ValidateSignature(body, now, signBody(secret, now, body)))
	})

	t.Run("誤った簽名", func(t *testing.T) {
		assert.False(t, client.ValidateSignature(body, now, signBody("wrong-secret", now, body)))
	})

	t.Run("body 改竄", func(t *testing.T) {
		sig := signBody(secret, now, body)
		assert.False(t, client.ValidateSignature([]byte("tampered"), now, sig))
	})

	t.Run("時間戳過期", func(t *testing.T) {
		stale := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
		assert.False(t, client.ValidateSignature(body, stale, signBody(secret, stale, body)))
	})

	t.Run("時間戳非數字", func(t *testing.T) {
		assert.False(t, client.ValidateSignature(body, "not-a-number", "v0=abc"))
	})

	t.Run("header 欠落", func(t *testing.T) {
		assert.False(t, client.ValidateSignature(body, "", ""))
	})

	t.Run("secret 未設定時はスキップ", func(t *testing.T) {
		open := signingClient("")
		assert.True(t, open.ValidateSignature(body, "", ""))
	})
}
