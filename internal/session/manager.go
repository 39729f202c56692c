package session

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"azor-chatdog/internal/history"
	"azor-chatdog/internal/llm"
)

// Manager ties the store to the active provider session: one session
// at a time, synchronous, saved after every completed exchange. It is
// what the interactive loop talks to.
type Manager struct {
	store        *Store
	client       llm.Client
	systemPrompt string

	sessionID string
	chat      llm.ChatSession
}

func NewManager(store *Store, client llm.Client, systemPrompt string) *Manager {
	return &Manager{store: store, client: client, systemPrompt: systemPrompt}
}

// InitializeFromCLI materializes the session named on the command line
// or creates a new one when the id is empty. Not-found and decode
// failures mean a fresh session under the requested id, not an abort;
// resumed reports whether prior history was actually loaded.
func (m *Manager) InitializeFromCLI(sessionID string) (resumed bool, err error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		m.sessionID = uuid.NewString()
		m.chat = m.client.CreateChatSession(m.systemPrompt, nil)
		return false, nil
	}

	// State is taken over only once the load outcome is known: a hard
	// I/O failure must leave the previously active session intact, or a
	// later save would persist its conversation under the new id.
	conv, err := m.store.Load(sessionID)
	switch {
	case err == nil:
		m.sessionID = sessionID
		m.chat = m.client.CreateChatSession(m.systemPrompt, conv)
		return true, nil
	case errors.Is(err, ErrNotFound) || errors.Is(err, ErrDecode):
		log.Printf("starting new session: %v", err)
		m.sessionID = sessionID
		m.chat = m.client.CreateChatSession(m.systemPrompt, nil)
		return false, nil
	default:
		return false, err
	}
}

// Send forwards one user message through the active provider session.
func (m *Manager) Send(ctx context.Context, text string) string {
	return m.chat.SendMessage(ctx, text)
}

// SaveToFile persists the current conversation through the store's
// naming rules.
func (m *Manager) SaveToFile() error {
	return m.store.Save(m.sessionID, m.chat.History(), m.systemPrompt, m.client.ModelName())
}

// CleanupAndSave is the interrupt/exit path: best effort, failures are
// logged rather than returned.
func (m *Manager) CleanupAndSave() {
	if m.chat == nil {
		return
	}
	if err := m.SaveToFile(); err != nil {
		log.Printf("final save failed: %v", err)
	}
}

func (m *Manager) SessionID() string { return m.sessionID }

func (m *Manager) DisplayName() string { return m.store.DisplayName(m.sessionID) }

func (m *Manager) History() []history.Content {
	if m.chat == nil {
		return nil
	}
	return m.chat.History()
}

// TokenCount is the provider's best-effort estimate over the current
// conversation.
func (m *Manager) TokenCount() int {
	if m.chat == nil {
		return 0
	}
	return m.client.CountHistoryTokens(m.chat.History())
}
