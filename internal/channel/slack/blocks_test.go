package slack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-suggestion-bot/internal/core/suggest"
)

func TestStripMention(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"先頭の提及", "<@U0BOT123> キャベツと鶏肉", "キャベツと鶏肉"},
		{"提及なし", "さっぱりしたものが食べたい", "さっぱりしたものが食べたい"},
		{"提及のみ", "<@U0BOT123>", ""},
		{"複数の提及", "<@U1> <@U2> 夏バテで食欲ない", "夏バテで食欲ない"},
		{"空文字", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripMention(tt.input))
		})
	}
}

func TestRecipeBlocksShape(t *testing.T) {
	recipes := []suggest.Recipe{
		{Number: "1", Name: "鶏肉炒め", Description: "塩コショウで味付け"},
		{Number: "2", Name: "野菜スープ", Description: "キャベツたっぷり"},
	}

	blocks := RecipeBlocks(recipes, suggest.KindIngredient)

	// header + context + 2 sections + divider
	require.Len(t, blocks, 5)
	assert.Equal(t, "header", blocks[0].Type)
	assert.Equal(t, "🍽️ メニュー提案", blocks[0].Text.Text)

	assert.Equal(t, "context", blocks[1].Type)
	require.Len(t, blocks[1].Elements, 1)
	assert.Equal(t, "_食材を使った提案_", blocks[1].Elements[0].Text)

	assert.Equal(t, "section", blocks[2].Type)
	assert.Equal(t, "*1. 鶏肉炒め*\n塩コショウで味付け", blocks[2].Text.Text)
	assert.Equal(t, "*2. 野菜スープ*\nキャベツたっぷり", blocks[3].Text.Text)

	assert.Equal(t, "divider", blocks[4].Type)
}

func TestRecipeBlocksMoodContext(t *testing.T) {
	recipes := []suggest.Recipe{{Number: "1", Name: "親子丼", Description: "定番"}}
	blocks := RecipeBlocks(recipes, suggest.KindMood)
	assert.Equal(t, "_気分に合わせた提案_", blocks[1].Elements[0].Text)
}

func TestHelpBlocks(t *testing.T) {
	text, blocks := HelpBlocks()

	assert.Contains(t, text, "使い方")
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0].Text.Text, "晩御飯提案BOTの使い方")
	assert.Contains(t, blocks[1].Text.Text, "📝 使用例")
	assert.Contains(t, blocks[1].Text.Text, "/dinner キャベツと鶏肉")
}
