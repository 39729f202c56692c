package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"azor-chatdog/internal/history"
)

const claudeMaxTokens = 4096

type ClaudeClient struct {
	client  anthropic.Client
	model   string
	apiKey  string
	errRole string
	ready   bool
}

func NewClaude(apiKey, model, errRole string) (*ClaudeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("claude api key cannot be empty")
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &ClaudeClient{client: client, model: model, apiKey: apiKey, errRole: errRole, ready: true}, nil
}

func (c *ClaudeClient) CreateChatSession(systemInstruction string, hist []history.Content) ChatSession {
	return newChatSession(systemInstruction, hist, c.errRole, c.complete)
}

func (c *ClaudeClient) complete(ctx context.Context, system string, conv []history.Content) (string, error) {
	var msgs []anthropic.MessageParam
	for _, m := range conv {
		text := history.Text(m)
		switch m.Role {
		case history.RoleUser:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		case history.RoleModel:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: claudeMaxTokens,
		Messages:  msgs,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	res, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude messages api: %w", err)
	}
	text := textFromBlocks(res.Content)
	if text == "" {
		return "", fmt.Errorf("claude returned no text blocks")
	}
	return text, nil
}

// textFromBlocks concatenates the text variants of a reply. Each block
// kind gets an explicit case; non-text kinds (tool use, thinking) are
// skipped rather than probed for a text-shaped field.
func textFromBlocks(blocks []anthropic.ContentBlockUnion) string {
	var b strings.Builder
	for _, block := range blocks {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			b.WriteString(v.Text)
		}
	}
	return b.String()
}

func (c *ClaudeClient) CountHistoryTokens(conv []history.Content) int {
	return EstimateTokens(conv)
}

func (c *ClaudeClient) ModelName() string { return c.model }

func (c *ClaudeClient) IsAvailable() bool {
	return c.ready && c.apiKey != ""
}
