// Package history defines the universal conversation format shared by
// every provider client and the on-disk session record, plus the
// conversions between the two. All "missing field -> default" policy
// lives here so the store and the provider adapters never re-implement
// it.
package history

import "time"

const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
)

// Part is one fragment of a turn. Today it only carries text.
type Part struct {
	Text string `json:"text"`
}

// Content is one turn in the universal, provider-agnostic format.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Turn is one entry of a persisted session record. The timestamp is
// write-time metadata: it is assigned on save and dropped on load.
type Turn struct {
	Role      string `json:"role"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// Record is the on-disk shape of a session file.
type Record struct {
	SessionID  string `json:"session_id"`
	Model      string `json:"model"`
	SystemRole string `json:"system_role"`
	History    []Turn `json:"history"`
}

// NewContent builds a single-part turn.
func NewContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// Text extracts the text of a turn's first part. Turns with no parts
// yield the empty string.
func Text(c Content) string {
	if len(c.Parts) == 0 {
		return ""
	}
	return c.Parts[0].Text
}

// ToUniversal converts stored turns into the universal format. The
// transform is lossless except for timestamps, which are record-only
// metadata. Turns with a missing role default to "user".
func ToUniversal(turns []Turn) []Content {
	out := make([]Content, 0, len(turns))
	for _, t := range turns {
		role := t.Role
		if role == "" {
			role = RoleUser
		}
		out = append(out, NewContent(role, t.Text))
	}
	return out
}

// FromUniversal converts a conversation into storable turns, stamping
// each with now. Turns whose text is empty are dropped so empty
// entries never reach disk.
func FromUniversal(contents []Content, now time.Time) []Turn {
	var out []Turn
	for _, c := range contents {
		text := Text(c)
		if text == "" {
			continue
		}
		role := c.Role
		if role == "" {
			role = RoleUser
		}
		out = append(out, Turn{
			Role:      role,
			Timestamp: now.Format(time.RFC3339Nano),
			Text:      text,
		})
	}
	return out
}

// Clone deep-copies a conversation, including the Parts slices, so
// callers can mutate the result without reaching the original.
func Clone(contents []Content) []Content {
	if contents == nil {
		return nil
	}
	out := make([]Content, len(contents))
	for i, c := range contents {
		parts := make([]Part, len(c.Parts))
		copy(parts, c.Parts)
		out[i] = Content{Role: c.Role, Parts: parts}
	}
	return out
}

// FirstUserText returns the text of the first user turn, or "" when no
// user turn carries any.
func FirstUserText(contents []Content) string {
	for _, c := range contents {
		if c.Role != RoleUser {
			continue
		}
		if text := Text(c); text != "" {
			return text
		}
	}
	return ""
}

// ParseTimestamp reads a stored turn timestamp. Records written by
// older builds carry zone-less ISO-8601 stamps, so both layouts are
// accepted.
func ParseTimestamp(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
