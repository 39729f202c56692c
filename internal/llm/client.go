package llm

import (
	"context"

	"azor-chatdog/internal/history"
)

// ChatSession is one live conversation with a provider. SendMessage
// never surfaces a transport error: a failed call is absorbed and
// answered with a synthesized turn so the loop can continue.
type ChatSession interface {
	SendMessage(ctx context.Context, text string) string
	History() []history.Content
}

// Client wraps one chat-completion provider behind a uniform surface.
// IsAvailable reports readiness from local state only; it never makes
// a network call.
type Client interface {
	CreateChatSession(systemInstruction string, hist []history.Content) ChatSession
	CountHistoryTokens(hist []history.Content) int
	ModelName() string
	IsAvailable() bool
}
