package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"TrailGuard-App/internal/domain/repository"
)

// OpenAIInvasiveChecker OpenAI APIを使用した外来種判定の実装
type OpenAIInvasiveChecker struct {
	client *openai.Client
	model  string
}

// NewOpenAIInvasiveChecker 新しいチェッカーを生成する
func NewOpenAIInvasiveChecker(apiKey string) *OpenAIInvasiveChecker {
	return &OpenAIInvasiveChecker{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// CheckInvasive 植物名から外来種かどうかを判定する
// 応答の先頭行が "true" なら外来種とみなし、続く本文を悪影響の説明として扱う
func (c *OpenAIInvasiveChecker) CheckInvasive(ctx context.Context, plantName string) (*repository.InvasiveCheckResult, error) {
	prompt := fmt.Sprintf(
		"Is the plant '%s' an invasive species? If yes, return 'true' and list its harmful effects. If no, return 'false' and an empty string.",
		plantName,
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a knowledgeable bot about plant species.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return nil, fmt.Errorf("外来種判定APIの呼び出しに失敗: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("外来種判定APIから応答がありません")
	}

	return parseInvasiveAnswer(resp.Choices[0].Message.Content), nil
}

// parseInvasiveAnswer モデル応答を判定結果に変換する
func parseInvasiveAnswer(answer string) *repository.InvasiveCheckResult {
	lowered := strings.ToLower(answer)
	if !strings.Contains(lowered, "true") {
		return &repository.InvasiveCheckResult{Invasive: false, HarmfulEffects: ""}
	}

	// "true" を取り除いた残りを悪影響の説明として整形する
	effects := strings.TrimSpace(strings.NewReplacer("true", "", "True", "", "TRUE", "").Replace(answer))
	return &repository.InvasiveCheckResult{
		Invasive:       true,
		HarmfulEffects: effects,
	}
}
