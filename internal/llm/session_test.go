package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"azor-chatdog/internal/history"
)

func echoComplete(ctx context.Context, system string, conv []history.Content) (string, error) {
	if len(conv) == 0 {
		return "", errors.New("empty conversation")
	}
	return "echo: " + history.Text(conv[len(conv)-1]), nil
}

func failingComplete(ctx context.Context, system string, conv []history.Content) (string, error) {
	return "", fmt.Errorf("provider exploded")
}

func TestSendMessageAppendsBothTurns(t *testing.T) {
	s := newChatSession("sys", nil, "", echoComplete)

	got := s.SendMessage(context.Background(), "hello")
	if got != "echo: hello" {
		t.Fatalf("got %q", got)
	}

	conv := s.History()
	if len(conv) != 2 {
		t.Fatalf("want 2 turns, got %d", len(conv))
	}
	if conv[0].Role != history.RoleUser || history.Text(conv[0]) != "hello" {
		t.Fatalf("unexpected user turn: %+v", conv[0])
	}
	if conv[1].Role != history.RoleModel || history.Text(conv[1]) != "echo: hello" {
		t.Fatalf("unexpected model turn: %+v", conv[1])
	}
}

func TestSendMessageFailureSynthesizesApology(t *testing.T) {
	s := newChatSession("", nil, "", failingComplete)

	before := len(s.History())
	got := s.SendMessage(context.Background(), "are you there?")
	if got == "" {
		t.Fatalf("apology text must be non-empty")
	}

	conv := s.History()
	if len(conv) != before+2 {
		t.Fatalf("history grew by %d, want 2", len(conv)-before)
	}
	last := conv[len(conv)-1]
	if last.Role != history.RoleModel {
		t.Fatalf("synthesized turn role %q, want %q", last.Role, history.RoleModel)
	}
	if history.Text(last) != got {
		t.Fatalf("returned text %q differs from recorded turn %q", got, history.Text(last))
	}
}

func TestSendMessageFailureSystemRole(t *testing.T) {
	s := newChatSession("", nil, history.RoleSystem, failingComplete)

	s.SendMessage(context.Background(), "hi")
	conv := s.History()
	last := conv[len(conv)-1]
	if last.Role != history.RoleSystem {
		t.Fatalf("synthesized turn role %q, want %q", last.Role, history.RoleSystem)
	}
}

func TestNewChatSessionSeedsHistory(t *testing.T) {
	seed := []history.Content{
		history.NewContent(history.RoleUser, "earlier question"),
		history.NewContent(history.RoleModel, "earlier answer"),
		{}, // malformed entries are filtered out
	}
	s := newChatSession("sys", seed, "", echoComplete)
	if got := len(s.History()); got != 2 {
		t.Fatalf("want 2 seeded turns, got %d", got)
	}
}

func TestHistoryCopySemantics(t *testing.T) {
	s := newChatSession("", nil, "", echoComplete)
	s.SendMessage(context.Background(), "hello")

	conv := s.History()
	conv[0] = history.NewContent(history.RoleUser, "mutated")
	if history.Text(s.History()[0]) != "hello" {
		t.Fatalf("internal state mutated via returned slice")
	}

	// Writing through the Parts slice must not reach internal state
	// either.
	conv = s.History()
	conv[1].Parts[0].Text = "tampered"
	if got := history.Text(s.History()[1]); got != "echo: hello" {
		t.Fatalf("internal state mutated via shared parts: %q", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	conv := []history.Content{
		history.NewContent(history.RoleUser, "abcd"),
		history.NewContent(history.RoleModel, "efghijkl"),
	}
	if got := EstimateTokens(conv); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
	if got := EstimateTokens(nil); got != 0 {
		t.Fatalf("want 0, got %d", got)
	}
}
