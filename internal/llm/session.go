package llm

import (
	"context"
	"log"

	"azor-chatdog/internal/history"
)

const apologyText = "Sorry, something went wrong while generating a reply."

// completeFunc performs one provider call over the full conversation
// and returns the assistant text.
type completeFunc func(ctx context.Context, system string, conv []history.Content) (string, error)

// chatSession is the provider-independent half of a chat session: it
// owns the universal history and the failure policy, and delegates the
// actual call to the provider's complete function.
type chatSession struct {
	system   string
	conv     []history.Content
	errRole  string
	complete completeFunc
}

func newChatSession(system string, hist []history.Content, errRole string, complete completeFunc) *chatSession {
	s := &chatSession{system: system, errRole: errRole, complete: complete}
	if s.errRole == "" {
		s.errRole = history.RoleModel
	}
	for _, c := range hist {
		if c.Role != "" && len(c.Parts) > 0 {
			s.conv = append(s.conv, c)
		}
	}
	return s
}

// SendMessage appends the outgoing user turn, dispatches the call and
// appends whatever comes back. A provider failure becomes a
// synthesized turn carrying apologyText (recorded under errRole)
// instead of an error, which keeps the conversation alive at the cost
// of recording a reply the model never produced.
func (s *chatSession) SendMessage(ctx context.Context, text string) string {
	s.conv = append(s.conv, history.NewContent(history.RoleUser, text))

	out, err := s.complete(ctx, s.system, s.conv)
	if err != nil {
		log.Printf("provider call failed: %v", err)
		s.conv = append(s.conv, history.NewContent(s.errRole, apologyText))
		return apologyText
	}
	s.conv = append(s.conv, history.NewContent(history.RoleModel, out))
	return out
}

func (s *chatSession) History() []history.Content {
	return history.Clone(s.conv)
}

// EstimateTokens is the chars/4 heuristic used by providers without a
// real tokenizer. Known approximate.
func EstimateTokens(conv []history.Content) int {
	total := 0
	for _, c := range conv {
		total += len(history.Text(c))
	}
	return total / 4
}
