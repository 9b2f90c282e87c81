package suggest

import (
	"regexp"
	"strings"

	"dinner-suggestion-bot/internal/pkg/common"
)

const fallbackRecipeName = "提案されたメニュー"

var (
	// 編號條目的起點（半形或全形句點）
	entryStartPattern = regexp.MustCompile(`(?m)^[ \t　]*(\d+)[.．][ \t　]*`)
	// 行首的說明標記（半形/全形橫線或中點）
	descMarkerPattern = regexp.MustCompile(`(?m)^[ \t　]*[-－・][ \t　]*`)
	lineOrdinalPrefix = regexp.MustCompile(`^(\d+)[.．]\s*`)
	lineMarkerPrefix  = regexp.MustCompile(`^[-－・]\s*`)
)

// ParseRecipes 將模型輸出解析為結構化菜單。
// 三段式策略：結構化掃描 → 逐行掃描 → 合成單一條目。
// 永不失敗；非空輸入保證回傳至少一個條目。
func ParseRecipes(text string) []Recipe {
	if text == "" {
		return nil
	}

	if recipes := parseStructured(text); len(recipes) > 0 {
		return recipes
	}
	if recipes := parseLineScan(text); len(recipes) > 0 {
		return recipes
	}
	return []Recipe{syntheticRecipe(text)}
}

// parseStructured 以編號條目切塊後抽取（編號、菜名、說明）。
// 說明自標記行起延伸到下一個編號條目為止。
func parseStructured(text string) []Recipe {
	starts := entryStartPattern.FindAllStringSubmatchIndex(text, -1)
	var recipes []Recipe

	for i, loc := range starts {
		blockEnd := len(text)
		if i+1 < len(starts) {
			blockEnd = starts[i+1][0]
		}

		number := text[loc[2]:loc[3]]
		rest := text[loc[1]:blockEnd]

		// 菜名取到行尾
		name := rest
		body := ""
		if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
			name = rest[:idx]
			body = rest[idx+1:]
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		// 說明標記為必要條件，缺少時整塊不採用
		marker := descMarkerPattern.FindStringIndex(body)
		if marker == nil {
			continue
		}
		description := strings.TrimSpace(body[marker[1]:])

		recipes = append(recipes, Recipe{
			Number:      number,
			Name:        name,
			Description: description,
		})
	}

	return recipes
}

// parseLineScan 逐行掃描：編號行開啟新條目，標記行覆寫說明（後者為準）
func parseLineScan(text string) []Recipe {
	var recipes []Recipe
	var current *Recipe

	flush := func() {
		if current != nil && current.Name != "" {
			recipes = append(recipes, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := lineOrdinalPrefix.FindStringSubmatch(line); m != nil {
			flush()
			current = &Recipe{
				Number: m[1],
				Name:   strings.TrimSpace(line[len(m[0]):]),
			}
			continue
		}

		if m := lineMarkerPrefix.FindStringIndex(line); m != nil && current != nil {
			current.Description = strings.TrimSpace(line[m[1]:])
		}
	}
	flush()

	return recipes
}

// syntheticRecipe 無法解析時合成單一條目，說明取前 100 字（rune 計）
func syntheticRecipe(text string) Recipe {
	return Recipe{
		Number:      "1",
		Name:        fallbackRecipeName,
		Description: common.TruncateText(text, 100),
	}
}
