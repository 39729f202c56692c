package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Engine string

const (
	EngineGemini Engine = "GEMINI"
	EngineClaude Engine = "CLAUDE"
	EngineOpenAI Engine = "OPENAI"
	EngineYandex Engine = "YANDEX"
)

type Config struct {
	// Engine selects the active chat-completion provider.
	Engine Engine `env:"ENGINE" envDefault:"GEMINI"`

	// Storage
	LogDir string `env:"AZOR_LOG_DIR" envDefault:"logs"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH" envDefault:"prompts/system_prompt.txt"`

	// Gemini
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL_NAME" envDefault:"gemini-2.5-flash"`

	// Claude
	ClaudeAPIKey string `env:"CLAUDE_API_KEY"`
	ClaudeModel  string `env:"CLAUDE_MODEL_NAME" envDefault:"claude-2.1"`

	// OpenAI-compatible endpoints
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Yandex
	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// ErrorTurnRole is the role recorded for the turn synthesized when a
	// provider call fails: "model" keeps the apology-as-assistant
	// behavior, "system" marks the failure distinctly in the transcript.
	ErrorTurnRole string `env:"AZOR_ERROR_TURN_ROLE" envDefault:"model"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
