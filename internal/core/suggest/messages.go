package suggest

// 各失敗結果對應的使用者訊息（日語，對應各頻道的使用者族群）
var failureMessages = map[Outcome]string{
	OutcomeThrottled:     "申し訳ございません。現在アクセスが集中しています。少し時間をおいてからお試しください。",
	OutcomeModelNotReady: "申し訳ございません。AIモデルが準備中です。しばらくお待ちください。",
	OutcomeInvalidFormat: "申し訳ございません。レシピの生成中にエラーが発生しました。",
	OutcomeUnknownError:  "申し訳ございません。予期しないエラーが発生しました。",
}

// 未登錄的結果一律回覆通用訊息
const genericFailureMessage = "申し訳ございません。エラーが発生しました。もう一度お試しください。"

// FailureMessage 將失敗結果對應為使用者訊息（全域皆有對應）
func FailureMessage(outcome Outcome) string {
	if msg, ok := failureMessages[outcome]; ok {
		return msg
	}
	return genericFailureMessage
}
