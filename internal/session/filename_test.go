package session

import (
	"regexp"
	"strings"
	"testing"
)

var sanitizedCharset = regexp.MustCompile(`^[A-Za-z0-9_\-]*$`)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello world", "Hello_world"},
		{"  spaced   out  ", "spaced_out"},
		{"what's up? (really!)", "whats_up_really"},
		{"already_clean-name", "already_clean-name"},
		{"__edge__case__", "edge_case"},
		{"tabs\tand\nnewlines", "tabs_and_newlines"},
		{"???", ""},
		{"", ""},
	}
	for _, c := range cases {
		got := Sanitize(c.in, 50)
		if got != c.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
		if !sanitizedCharset.MatchString(got) {
			t.Fatalf("Sanitize(%q) = %q contains invalid characters", c.in, got)
		}
		if strings.HasPrefix(got, "_") || strings.HasSuffix(got, "_") || strings.Contains(got, "__") {
			t.Fatalf("Sanitize(%q) = %q has leading/trailing/doubled underscore", c.in, got)
		}
	}
}

func TestSanitizeTruncatesBeforeCleaning(t *testing.T) {
	long := strings.Repeat("a", 60) + " trailing words"
	got := Sanitize(long, 50)
	if got != strings.Repeat("a", 50) {
		t.Fatalf("got %q", got)
	}
	if len(got) > 50 {
		t.Fatalf("result longer than cap: %d", len(got))
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("abcdef12-3456-7890"); got != "abcdef12" {
		t.Fatalf("got %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("short input should pass through, got %q", got)
	}
}

func TestFriendlyFilename(t *testing.T) {
	got := FriendlyFilename("Hello world", "abcdef12-3456-7890-abcd-ef1234567890")
	if got != "Hello_world_abcdef12" {
		t.Fatalf("got %q", got)
	}
}

func TestFriendlyFilenameFallback(t *testing.T) {
	got := FriendlyFilename("???", "abcdef12-3456-7890-abcd-ef1234567890")
	if got != "conversation_abcdef12" {
		t.Fatalf("got %q", got)
	}
}

func TestSplitCurrentName(t *testing.T) {
	friendly, shortID, ok := splitCurrentName("hello_world_abcdef12.json")
	if !ok || friendly != "hello_world" || shortID != "abcdef12" {
		t.Fatalf("got (%q, %q, %v)", friendly, shortID, ok)
	}
	if _, _, ok := splitCurrentName("nounderscore.json"); ok {
		t.Fatalf("name without underscore should not parse")
	}
}

func TestLegacyNameHelpers(t *testing.T) {
	name := "abcdef12-3456-7890-abcd-ef1234567890-log.json"
	if !isLegacyName(name) {
		t.Fatalf("legacy name not recognized")
	}
	if got := legacySessionID(name); got != "abcdef12-3456-7890-abcd-ef1234567890" {
		t.Fatalf("got %q", got)
	}
	if isLegacyName("hello_world_abcdef12.json") {
		t.Fatalf("current name misread as legacy")
	}
}
