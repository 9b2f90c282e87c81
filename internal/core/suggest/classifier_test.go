package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{
			name:  "食材列舉（指標詞兩種以上）",
			input: "キャベツと鶏肉、にんじん",
			want:  KindIngredient,
		},
		{
			name:  "心情關鍵詞",
			input: "さっぱりしたものが食べたい",
			want:  KindMood,
		},
		{
			name:  "單一食材",
			input: "キャベツ",
			want:  KindIngredient,
		},
		{
			name:  "指標詞優先於心情關鍵詞",
			input: "さっぱりした鶏肉と大根、豆腐",
			want:  KindIngredient,
		},
		{
			name:  "夏バテ",
			input: "夏バテで食欲ない",
			want:  KindMood,
		},
		{
			name:  "こってり系",
			input: "こってり系でスタミナつくもの",
			want:  KindMood,
		},
		{
			name:  "空輸入",
			input: "",
			want:  KindIngredient,
		},
		{
			name:  "殘留食材的表達",
			input: "豚肉が残ってる",
			want:  KindIngredient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	inputs := []string{
		"キャベツと鶏肉、にんじん",
		"さっぱりしたものが食べたい",
		"",
		"豆腐",
		"温まるものが食べたい気分",
	}
	for _, input := range inputs {
		first := Classify(input)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Classify(input), "input=%q", input)
		}
	}
}

func TestClassifyMoodKeywordCaseInsensitive(t *testing.T) {
	// 關鍵詞比對在小寫化後進行（對日文無影響，對英文輸入有效）
	assert.Equal(t, KindMood, Classify("ガッツリ食べたい"))
}
