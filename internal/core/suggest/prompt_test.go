package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptIngredient(t *testing.T) {
	p := BuildPrompt("キャベツと鶏肉", KindIngredient)

	assert.Equal(t, KindIngredient, p.Kind)
	assert.Contains(t, p.Text, "食材: キャベツと鶏肉")
	assert.Contains(t, p.Text, "あなたは優秀な料理アドバイザーです。")
	assert.Contains(t, p.Text, "提案フォーマット:")
	assert.NotContains(t, p.Text, "ユーザーの気分・希望")
}

func TestBuildPromptMood(t *testing.T) {
	p := BuildPrompt("さっぱりしたものが食べたい", KindMood)

	assert.Equal(t, KindMood, p.Kind)
	assert.Contains(t, p.Text, "ユーザーの気分・希望: さっぱりしたものが食べたい")
	assert.Contains(t, p.Text, "あなたはプロの料理アドバイザーです。")
	assert.NotContains(t, p.Text, "食材: ")
}

func TestBuildPromptInjectsRawText(t *testing.T) {
	// 輸入原樣填入，不做任何加工
	raw := "  豚肉 と 白菜  "
	p := BuildPrompt(raw, KindIngredient)
	assert.True(t, strings.Contains(p.Text, raw))
}
