package llm

import (
	"context"
	"fmt"
	"strings"

	"azor-chatdog/internal/config"
)

// NewClient builds the client for the configured engine. An empty
// engine string selects Gemini. A construction failure here is the
// only fatal error in the system; without a provider there is no
// session work to do.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch config.Engine(strings.ToUpper(strings.TrimSpace(string(cfg.Engine)))) {
	case "", config.EngineGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ErrorTurnRole)
	case config.EngineClaude:
		return NewClaude(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.ErrorTurnRole)
	case config.EngineOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.ErrorTurnRole), nil
	case config.EngineYandex:
		return NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID, cfg.ErrorTurnRole)
	default:
		return nil, fmt.Errorf("unknown engine: %s", cfg.Engine)
	}
}
