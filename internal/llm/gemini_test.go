package llm

import (
	"testing"

	"google.golang.org/genai"

	"azor-chatdog/internal/history"
)

func TestGeminiRoleMapping(t *testing.T) {
	// The mapping must produce genai.Role values, not bare strings.
	var got genai.Role

	got = geminiRole(history.RoleModel)
	if got != genai.RoleModel {
		t.Fatalf("model role mapped to %q", got)
	}
	got = geminiRole(history.RoleUser)
	if got != genai.RoleUser {
		t.Fatalf("user role mapped to %q", got)
	}
	// System turns recorded in a transcript have no Gemini counterpart
	// and go in as user.
	got = geminiRole(history.RoleSystem)
	if got != genai.RoleUser {
		t.Fatalf("system role mapped to %q", got)
	}
}
