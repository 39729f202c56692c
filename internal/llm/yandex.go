package llm

import (
	"context"
	"fmt"

	"github.com/Morwran/yagpt"

	"azor-chatdog/internal/history"
)

type YandexClient struct {
	ya       yagpt.YaGPTFace
	iamToken string
	errRole  string
}

func NewYandex(oauthToken, folderID, errRole string) (*YandexClient, error) {
	// Exchange the OAuth token for an IAM token up front.
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init yandex iam: %w", err)
	}
	resp, err := iam.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create iam token: %w", err)
	}

	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to init yagpt: %w", err)
	}

	return &YandexClient{ya: ya, iamToken: resp.IamToken, errRole: errRole}, nil
}

func (c *YandexClient) CreateChatSession(systemInstruction string, hist []history.Content) ChatSession {
	return newChatSession(systemInstruction, hist, c.errRole, c.complete)
}

func (c *YandexClient) complete(ctx context.Context, system string, conv []history.Content) (string, error) {
	var messages []yagpt.Message
	if system != "" {
		messages = append(messages, yagpt.Message{Role: "system", Content: system})
	}
	for _, m := range conv {
		role := "user"
		if m.Role == history.RoleModel {
			role = "assistant"
		}
		messages = append(messages, yagpt.Message{Role: role, Content: history.Text(m)})
	}

	resp, err := c.ya.CompletionWithCtx(ctx, c.iamToken, messages)
	if err != nil {
		return "", fmt.Errorf("yagpt completion failed: %w", err)
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return "", fmt.Errorf("yagpt returned empty response")
	}
	return resp.Alternatives[0].Message.Content, nil
}

func (c *YandexClient) CountHistoryTokens(conv []history.Content) int {
	return EstimateTokens(conv)
}

func (c *YandexClient) ModelName() string { return yagpt.YaModelLite }

func (c *YandexClient) IsAvailable() bool {
	return c.ya != nil && c.iamToken != ""
}
