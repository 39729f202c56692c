package session

import (
	"regexp"
	"strings"
)

const (
	legacySuffix = "-log.json"
	fileExt      = ".json"

	maxFriendlyLen      = 50
	shortIDLen          = 8
	defaultFriendlyName = "conversation"

	// walFilename is owned by the write-ahead log and is never treated
	// as a session file.
	walFilename = "azor-wal.json"
)

var (
	invalidChars   = regexp.MustCompile(`[^\w\s\-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// Sanitize reduces raw text to a filename-safe name: the input is
// truncated to maxLength first, everything outside letters, digits,
// whitespace, hyphen and underscore is stripped, whitespace runs become
// single underscores and repeated or edge underscores are removed. The
// result may be empty; callers decide whether that means a fallback
// name or an error.
func Sanitize(raw string, maxLength int) string {
	if maxLength > 0 {
		if r := []rune(raw); len(r) > maxLength {
			raw = string(r[:maxLength])
		}
	}
	s := strings.TrimSpace(raw)
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// ShortID is the 8-character prefix of a session identifier, used as
// the uniqueness suffix in current-format filenames.
func ShortID(sessionID string) string {
	if len(sessionID) <= shortIDLen {
		return sessionID
	}
	return sessionID[:shortIDLen]
}

// FriendlyFilename derives the current-format base name (without
// extension) from the first user message. An unusable message falls
// back to "conversation".
func FriendlyFilename(firstUserMessage, sessionID string) string {
	name := Sanitize(firstUserMessage, maxFriendlyLen)
	if name == "" {
		name = defaultFriendlyName
	}
	return name + "_" + ShortID(sessionID)
}

func isLegacyName(filename string) bool {
	return strings.HasSuffix(filename, legacySuffix)
}

// legacySessionID extracts the full identifier embedded in a
// legacy-format filename.
func legacySessionID(filename string) string {
	return strings.TrimSuffix(filename, legacySuffix)
}

// splitCurrentName splits a current-format filename into its friendly
// name and short id. Friendly names may themselves contain
// underscores, so the short id is whatever follows the last one.
func splitCurrentName(filename string) (friendly, shortID string, ok bool) {
	base := strings.TrimSuffix(filename, fileExt)
	i := strings.LastIndex(base, "_")
	if i < 0 {
		return "", "", false
	}
	return base[:i], base[i+1:], true
}
