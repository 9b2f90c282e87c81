package suggest

import "strings"

// 心情關鍵詞列表
var moodKeywords = []string{
	"さっぱり", "あっさり", "こってり", "ガッツリ", "ヘルシー",
	"夏バテ", "疲れ", "スタミナ", "温まる", "冷たい",
	"辛い", "甘い", "優しい", "濃厚", "サッパリ",
	"気分", "食べたい", "系", "な感じ", "的な",
	"元気", "パワー", "軽め", "重め", "食欲",
	"がっつり", "しっかり", "ボリューム", "満足",
	"和風", "洋風", "中華", "エスニック", "イタリアン",
}

// 食材列舉的指標詞
var ingredientIndicators = []string{"と", "や", "、", "の", "が残って", "がある", "を使って"}

// Classify 判定輸入是心情導向還是食材導向。
// 指標詞（去重後）出現兩種以上 → 視為食材列舉；
// 否則含心情關鍵詞 → 心情導向；其餘一律食材導向。
func Classify(rawText string) Kind {
	indicatorCount := 0
	for _, indicator := range ingredientIndicators {
		if strings.Contains(rawText, indicator) {
			indicatorCount++
		}
	}
	if indicatorCount >= 2 {
		return KindIngredient
	}

	inputLower := strings.ToLower(rawText)
	for _, keyword := range moodKeywords {
		if strings.Contains(inputLower, keyword) {
			return KindMood
		}
	}

	return KindIngredient
}
