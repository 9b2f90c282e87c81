package bedrock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/bedrockruntime"
	"go.uber.org/zap"

	"dinner-suggestion-bot/internal/core/suggest"
	"dinner-suggestion-bot/internal/infrastructure/config"
	"dinner-suggestion-bot/internal/pkg/common"
)

// anthropicRequest Bedrock 的 anthropic messages 請求封套
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature"`
	TopP             float64            `json:"top_p"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// anthropicResponse Bedrock 的回應封套
type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

// Client AWS Bedrock 模型調用客戶端。
// 單次調用、不重試；失敗以 Outcome 分類回傳。
type Client struct {
	runtime *bedrockruntime.BedrockRuntime
	config  *config.Config
}

// NewClient 創建 Bedrock 客戶端
func NewClient(cfg *config.Config) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Bedrock.Region),
	})
	if err != nil {
		return nil, err
	}

	common.LogInfo("Bedrock 客戶端已初始化",
		zap.String("region", cfg.Bedrock.Region),
		zap.String("model_id", cfg.Bedrock.ModelID),
	)

	return &Client{
		runtime: bedrockruntime.New(sess),
		config:  cfg,
	}, nil
}

// Complete 調用模型生成文字
func (c *Client) Complete(ctx context.Context, prompt string) *suggest.CompletionResult {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        c.config.Bedrock.MaxTokens,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicContent{
					{Type: "text", Text: prompt},
				},
			},
		},
		Temperature: c.config.Bedrock.Temperature,
		TopP:        c.config.Bedrock.TopP,
	})
	if err != nil {
		common.LogError("Bedrock 請求編碼失敗", zap.Error(err))
		return &suggest.CompletionResult{Outcome: suggest.OutcomeUnknownError}
	}

	if c.config.Bedrock.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Bedrock.Timeout)
		defer cancel()
	}

	start := time.Now()
	output, err := c.runtime.InvokeModelWithContext(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.config.Bedrock.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		outcome := classifyInvokeError(err)
		common.LogError("Bedrock 調用失敗",
			zap.Error(err),
			zap.String("結果", string(outcome)),
			zap.Duration("耗時", time.Since(start)),
		)
		return &suggest.CompletionResult{Outcome: outcome}
	}

	text, outcome := extractCompletionText(output.Body)
	if outcome != suggest.OutcomeOK {
		common.LogError("Bedrock 回應格式異常",
			zap.String("結果", string(outcome)),
		)
		return &suggest.CompletionResult{Outcome: outcome}
	}

	common.LogInfo("Bedrock 調用成功",
		zap.Duration("耗時", time.Since(start)),
		zap.Int("回應長度", len([]rune(text))),
	)
	return &suggest.CompletionResult{
		Outcome: suggest.OutcomeOK,
		Text:    text,
	}
}

// classifyInvokeError 將 AWS 錯誤碼對應為結果分類
func classifyInvokeError(err error) suggest.Outcome {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return suggest.OutcomeUnknownError
	}

	switch aerr.Code() {
	case bedrockruntime.ErrCodeThrottlingException,
		bedrockruntime.ErrCodeServiceQuotaExceededException:
		return suggest.OutcomeThrottled
	case bedrockruntime.ErrCodeModelNotReadyException:
		return suggest.OutcomeModelNotReady
	default:
		return suggest.OutcomeUnknownError
	}
}

// extractCompletionText 從回應封套抽出生成文字；形狀異常視為 invalid_format
func extractCompletionText(body []byte) (string, suggest.Outcome) {
	var resp anthropicResponse
	if err := common.ParseJSONBytes(body, &resp); err != nil {
		return "", suggest.OutcomeInvalidFormat
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", suggest.OutcomeInvalidFormat
	}
	return resp.Content[0].Text, suggest.OutcomeOK
}
