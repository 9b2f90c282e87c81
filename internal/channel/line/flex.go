package line

import (
	"fmt"

	"dinner-suggestion-bot/internal/core/suggest"
)

// Bubble Flex bubble 容器
type Bubble struct {
	Type   string `json:"type"`
	Header *Box   `json:"header,omitempty"`
	Body   *Box   `json:"body,omitempty"`
	Footer *Box   `json:"footer,omitempty"`
}

// Box Flex box 元件
type Box struct {
	Type            string `json:"type"`
	Layout          string `json:"layout"`
	Contents        []Text `json:"contents"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	PaddingAll      string `json:"paddingAll,omitempty"`
}

// Text Flex text 元件
type Text struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Size   string `json:"size,omitempty"`
	Weight string `json:"weight,omitempty"`
	Color  string `json:"color,omitempty"`
	Align  string `json:"align,omitempty"`
	Margin string `json:"margin,omitempty"`
	Wrap   bool   `json:"wrap,omitempty"`
}

// NewRecipeFlexMessage 將菜單提案渲染為 Flex bubble
func NewRecipeFlexMessage(recipes []suggest.Recipe) FlexMessage {
	menuItems := make([]Text, 0, len(recipes)*2)
	for i, recipe := range recipes {
		nameItem := Text{
			Type:   "text",
			Text:   fmt.Sprintf("%d. %s", i+1, recipe.Name),
			Size:   "md",
			Weight: "bold",
			Color:  "#1DB446",
		}
		if i > 0 {
			nameItem.Margin = "md"
		}
		menuItems = append(menuItems, nameItem)

		menuItems = append(menuItems, Text{
			Type:   "text",
			Text:   recipe.Description,
			Size:   "sm",
			Color:  "#666666",
			Wrap:   true,
			Margin: "sm",
		})
	}

	bodyContents := append([]Text{
		{
			Type:   "text",
			Text:   "本日のおすすめメニューです！",
			Size:   "sm",
			Color:  "#999999",
			Margin: "md",
		},
	}, menuItems...)

	bubble := &Bubble{
		Type: "bubble",
		Header: &Box{
			Type:   "box",
			Layout: "vertical",
			Contents: []Text{
				{
					Type:   "text",
					Text:   "🍽️ 晩御飯メニュー提案",
					Weight: "bold",
					Color:  "#FFFFFF",
					Size:   "lg",
				},
			},
			BackgroundColor: "#FF6B6B",
			PaddingAll:      "20px",
		},
		Body: &Box{
			Type:       "box",
			Layout:     "vertical",
			Contents:   bodyContents,
			PaddingAll: "20px",
		},
		Footer: &Box{
			Type:   "box",
			Layout: "vertical",
			Contents: []Text{
				{
					Type:  "text",
					Text:  "どれか作ってみてくださいね😊",
					Size:  "xs",
					Color: "#AAAAAA",
					Align: "center",
				},
			},
			PaddingAll: "10px",
		},
	}

	return FlexMessage{
		Type:     "flex",
		AltText:  "晩御飯メニュー提案",
		Contents: bubble,
	}
}
