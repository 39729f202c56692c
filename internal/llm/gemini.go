package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"azor-chatdog/internal/history"
)

type GeminiClient struct {
	client  *genai.Client
	model   string
	apiKey  string
	errRole string
}

func NewGemini(ctx context.Context, apiKey, model, errRole string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model, apiKey: apiKey, errRole: errRole}, nil
}

func (c *GeminiClient) CreateChatSession(systemInstruction string, hist []history.Content) ChatSession {
	return newChatSession(systemInstruction, hist, c.errRole, c.complete)
}

// geminiRole maps universal roles onto the two roles Gemini contents
// accept; anything that is not a model turn goes in as user. The genai
// role constants are untyped strings, so the named type is pinned here.
func geminiRole(role string) genai.Role {
	if role == history.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func (c *GeminiClient) complete(ctx context.Context, system string, conv []history.Content) (string, error) {
	var contents []*genai.Content
	for _, m := range conv {
		contents = append(contents, genai.NewContentFromText(history.Text(m), geminiRole(m.Role)))
	}

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}

func (c *GeminiClient) CountHistoryTokens(conv []history.Content) int {
	return EstimateTokens(conv)
}

func (c *GeminiClient) ModelName() string { return c.model }

func (c *GeminiClient) IsAvailable() bool {
	return c.client != nil && c.apiKey != ""
}
