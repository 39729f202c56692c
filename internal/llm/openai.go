package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"azor-chatdog/internal/history"
)

type OpenAIClient struct {
	client  *openai.Client
	model   string
	apiKey  string
	errRole string
}

// NewOpenAI builds a client for the OpenAI API or any compatible
// endpoint reachable through baseURL.
func NewOpenAI(apiKey, baseURL, model, errRole string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		apiKey:  apiKey,
		errRole: errRole,
	}
}

func (c *OpenAIClient) CreateChatSession(systemInstruction string, hist []history.Content) ChatSession {
	return newChatSession(systemInstruction, hist, c.errRole, c.complete)
}

func (c *OpenAIClient) complete(ctx context.Context, system string, conv []history.Content) (string, error) {
	var msgs []openai.ChatCompletionMessage
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	for _, m := range conv {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case history.RoleModel:
			role = openai.ChatMessageRoleAssistant
		case history.RoleSystem:
			role = openai.ChatMessageRoleSystem
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: history.Text(m)})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) CountHistoryTokens(conv []history.Content) int {
	return EstimateTokens(conv)
}

func (c *OpenAIClient) ModelName() string { return c.model }

func (c *OpenAIClient) IsAvailable() bool {
	return c.client != nil && c.apiKey != ""
}
