package slack

import (
	"fmt"
	"regexp"
	"strings"

	"dinner-suggestion-bot/internal/core/suggest"
)

// Block Block Kit 區塊
type Block struct {
	Type     string       `json:"type"`
	Text     *TextObject  `json:"text,omitempty"`
	Elements []TextObject `json:"elements,omitempty"`
}

// TextObject Block Kit 文字物件
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var mentionPattern = regexp.MustCompile(`<@[A-Z0-9]+>`)

// StripMention 移除訊息中的 bot 提及標記
func StripMention(text string) string {
	return strings.TrimSpace(mentionPattern.ReplaceAllString(text, ""))
}

// RecipeBlocks 將菜單提案渲染為 Block Kit 區塊
func RecipeBlocks(recipes []suggest.Recipe, kind suggest.Kind) []Block {
	blocks := []Block{
		{
			Type: "header",
			Text: &TextObject{
				Type: "plain_text",
				Text: "🍽️ メニュー提案",
			},
		},
	}

	contextText := "食材を使った提案"
	if kind == suggest.KindMood {
		contextText = "気分に合わせた提案"
	}
	blocks = append(blocks, Block{
		Type: "context",
		Elements: []TextObject{
			{
				Type: "mrkdwn",
				Text: fmt.Sprintf("_%s_", contextText),
			},
		},
	})

	for _, recipe := range recipes {
		blocks = append(blocks, Block{
			Type: "section",
			Text: &TextObject{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s. %s*\n%s", recipe.Number, recipe.Name, recipe.Description),
			},
		})
	}

	blocks = append(blocks, Block{Type: "divider"})
	return blocks
}

// HelpBlocks 使用說明（slash 指令未帶文字時回覆）
func HelpBlocks() (string, []Block) {
	text := "🍽️ 晩御飯提案BOTの使い方"
	blocks := []Block{
		{
			Type: "section",
			Text: &TextObject{
				Type: "mrkdwn",
				Text: "*晩御飯提案BOTの使い方*\n\n食材や気分を教えてください。美味しいメニューを提案します！",
			},
		},
		{
			Type: "section",
			Text: &TextObject{
				Type: "mrkdwn",
				Text: "*📝 使用例*\n" +
					"• `/dinner キャベツと鶏肉`\n" +
					"• `/dinner さっぱりしたものが食べたい`\n" +
					"• `/dinner 夏バテで食欲ない`\n" +
					"• `/dinner こってり系でスタミナつくもの`",
			},
		},
	}
	return text, blocks
}
