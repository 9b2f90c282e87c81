package suggest

import "context"

// Kind 輸入分類結果
type Kind string

const (
	// KindMood 心情導向的輸入
	KindMood Kind = "mood"
	// KindIngredient 食材導向的輸入
	KindIngredient Kind = "ingredient"
)

// Channel 訊息來源頻道
type Channel string

const (
	ChannelLine  Channel = "line"
	ChannelSlack Channel = "slack"
)

// Outcome 模型調用結果分類
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeThrottled     Outcome = "throttled"
	OutcomeModelNotReady Outcome = "model_not_ready"
	OutcomeInvalidFormat Outcome = "invalid_format"
	OutcomeUnknownError  Outcome = "unknown_error"
)

// CompletionResult 模型調用結果（以資料表達失敗，不拋 error）
type CompletionResult struct {
	Outcome Outcome
	Text    string // 僅在 Outcome 為 ok 時有值
}

// RenderedPrompt 已填入使用者輸入的提示詞
type RenderedPrompt struct {
	Kind Kind
	Text string
}

// Recipe 單一菜單項目
type Recipe struct {
	Number      string `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RecipeSet 菜單生成結果的統一封套
type RecipeSet struct {
	Success   bool     `json:"success"`
	Recipes   []Recipe `json:"recipes,omitempty"`
	Error     string   `json:"error,omitempty"`
	InputType Kind     `json:"input_type"`
}

// CompletionGateway 模型調用閘道（單次呼叫、不重試）
type CompletionGateway interface {
	Complete(ctx context.Context, prompt string) *CompletionResult
}
