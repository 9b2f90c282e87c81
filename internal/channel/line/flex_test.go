package line

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-suggestion-bot/internal/core/suggest"
)

func TestNewRecipeFlexMessage(t *testing.T) {
	recipes := []suggest.Recipe{
		{Number: "1", Name: "鶏肉炒め", Description: "塩コショウで味付け"},
		{Number: "2", Name: "野菜スープ", Description: "キャベツたっぷり"},
	}

	msg := NewRecipeFlexMessage(recipes)

	assert.Equal(t, "flex", msg.Type)
	assert.Equal(t, "晩御飯メニュー提案", msg.AltText)

	bubble := msg.Contents
	require.NotNil(t, bubble)
	assert.Equal(t, "bubble", bubble.Type)

	// ヘッダー
	require.NotNil(t, bubble.Header)
	require.Len(t, bubble.Header.Contents, 1)
	assert.Equal(t, "🍽️ 晩御飯メニュー提案", bubble.Header.Contents[0].Text)
	assert.Equal(t, "#FF6B6B", bubble.Header.BackgroundColor)

	// 本文：導入 1 行 + レシピごとに名前と説明
	require.NotNil(t, bubble.Body)
	contents := bubble.Body.Contents
	require.Len(t, contents, 1+len(recipes)*2)
	assert.Equal(t, "本日のおすすめメニューです！", contents[0].Text)

	assert.Equal(t, "1. 鶏肉炒め", contents[1].Text)
	assert.Equal(t, "#1DB446", contents[1].Color)
	assert.Equal(t, "bold", contents[1].Weight)
	assert.Empty(t, contents[1].Margin, "先頭のメニュー名に余白は付かない")

	assert.Equal(t, "塩コショウで味付け", contents[2].Text)
	assert.Equal(t, "#666666", contents[2].Color)
	assert.True(t, contents[2].Wrap)

	assert.Equal(t, "2. 野菜スープ", contents[3].Text)
	assert.Equal(t, "md", contents[3].Margin, "2件目以降のメニュー名は余白付き")

	// フッター
	require.NotNil(t, bubble.Footer)
	require.Len(t, bubble.Footer.Contents, 1)
	assert.Equal(t, "どれか作ってみてくださいね😊", bubble.Footer.Contents[0].Text)
}
