package suggest

import "fmt"

const ingredientPromptTemplate = `あなたは優秀な料理アドバイザーです。
以下の食材を使って、美味しい晩御飯のメニューを2-3個提案してください。
各メニューについて、簡単な説明も付けてください。

食材: %s

提案フォーマット:
🍽️ メニュー提案

1. [メニュー名]
   - 簡単な説明

2. [メニュー名]
   - 簡単な説明

必要に応じて3つ目のメニューも提案してください。
メニュー名は具体的で、作りたくなるような名前にしてください。
説明は1-2文で、調理方法の特徴や味の特徴を含めてください。`

const moodPromptTemplate = `あなたはプロの料理アドバイザーです。
ユーザーの今の気分や食べたいものの希望に基づいて、ぴったりの晩御飯メニューを提案してください。

ユーザーの気分・希望: %s

この気分にぴったり合う晩御飯メニューを2-3個提案してください。
各メニューについて、なぜその気分に合うのか、どんな味わいや特徴があるのかも含めて説明してください。

提案フォーマット:
🍽️ メニュー提案

1. [メニュー名]
   - 簡単な説明（この気分に合う理由、味の特徴、調理のポイントなど）

2. [メニュー名]
   - 簡単な説明（この気分に合う理由、味の特徴、調理のポイントなど）

必要に応じて3つ目のメニューも提案してください。
メニュー名は具体的で、作りたくなるような名前にしてください。
説明は2-3文で、なぜその気分にマッチするかを含めて記載してください。`

// BuildPrompt 依分類結果選用固定模板，使用者輸入原樣填入
func BuildPrompt(rawText string, kind Kind) RenderedPrompt {
	template := ingredientPromptTemplate
	if kind == KindMood {
		template = moodPromptTemplate
	}
	return RenderedPrompt{
		Kind: kind,
		Text: fmt.Sprintf(template, rawText),
	}
}
