package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"dinner-suggestion-bot/internal/infrastructure/config"
)

func lineClient(secret string) *Client {
	return NewClient(&config.Config{
		Line: config.LineConfig{ChannelAccessToken: "test-token", ChannelSecret: secret},
	})
}

func signLineBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestLineValidateSignature(t *testing.T) {
	const secret = "test-channel-secret"
	client := lineClient(secret)
	body := []byte(`{"destination":"U0000","events":[]}`)

	t.Run("正しい簽名", func(t *testing.T) {
		assert.True(t, client.ValidateSignature(body, signLineBody(secret, body)))
	})

	t.Run("誤った簽名", func(t *testing.T) {
		assert.False(t, client.ValidateSignature(body, signLineBody("wrong-secret", body)))
	})

	t.Run("body 改竄", func(t *testing.T) {
		sig := signLineBody(secret, body)
		assert.False(t, client.ValidateSignature([]byte(`{"events":[{}]}`), sig))
	})

	t.Run("簽名欠落", func(t *testing.T) {
		assert.False(t, client.ValidateSignature(body, ""))
	})

	t.Run("secret 未設定時はスキップ", func(t *testing.T) {
		open := lineClient("")
		assert.True(t, open.ValidateSignature(body, ""))
	})
}
