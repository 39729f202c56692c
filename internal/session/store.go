// Package session persists chat transcripts as one JSON record per
// session. Two filename encodings coexist: the legacy
// "<session_id>-log.json" and the current
// "<friendly_name>_<short_id>.json". The store reads both and never
// migrates a legacy file on save.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"azor-chatdog/internal/history"
)

// noActivity is the listing placeholder for records without a usable
// last-turn timestamp.
const noActivity = "no activity"

// Info is one row of a session listing. Err is set when the file could
// not be read or parsed; the remaining metadata fields are then empty.
type Info struct {
	ID           string
	DisplayName  string
	MessageCount int
	LastActivity string
	Err          error
}

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Find resolves the on-disk path for a session: first a scan for a
// current-format name carrying the session's short id, then the exact
// legacy path. A current-format file therefore supersedes a legacy one
// sharing the same short id. Two unrelated sessions whose ids share an
// 8-character prefix are a collision the caller must treat as such; the
// scan returns the first match in directory order.
func (s *Store) Find(sessionID string) (string, bool) {
	suffix := "_" + ShortID(sessionID) + fileExt
	if entries, err := os.ReadDir(s.dir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if strings.HasSuffix(e.Name(), suffix) && !isLegacyName(e.Name()) {
				return filepath.Join(s.dir, e.Name()), true
			}
		}
	}
	legacy := filepath.Join(s.dir, sessionID+legacySuffix)
	if info, err := os.Stat(legacy); err == nil && !info.IsDir() {
		return legacy, true
	}
	return "", false
}

// Load reads a session record and returns its history in universal
// form. A missing file yields ErrNotFound and malformed JSON yields
// ErrDecode; both come with an empty history and mean "start fresh",
// not "abort".
func (s *Store) Load(sessionID string) ([]history.Content, error) {
	path, ok := s.Find(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %q: %w", ShortID(sessionID), ErrNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rec history.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, ErrDecode)
	}
	return history.ToUniversal(rec.History), nil
}

// Save persists the whole record in one rewrite. Histories shorter
// than two turns are a successful no-op so half-finished sessions
// never reach disk. An existing file of either encoding keeps its
// path; otherwise a friendly name is derived from the first user turn,
// falling back to the legacy pattern when no user turn has text. Every
// turn is re-stamped at write time.
func (s *Store) Save(sessionID string, conv []history.Content, systemPrompt, modelName string) error {
	if len(conv) < 2 {
		return nil
	}

	path, ok := s.Find(sessionID)
	if !ok {
		if first := history.FirstUserText(conv); first != "" {
			path = filepath.Join(s.dir, FriendlyFilename(first, sessionID)+fileExt)
		} else {
			path = filepath.Join(s.dir, sessionID+legacySuffix)
		}
	}

	rec := history.Record{
		SessionID:  sessionID,
		Model:      modelName,
		SystemRole: systemPrompt,
		History:    history.FromUniversal(conv, time.Now()),
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ensure log dir: %w", err)
	}
	return writeRecord(path, rec)
}

// writeRecord goes through a temp file and a rename so a crash
// mid-write cannot leave a truncated record at the final path.
func writeRecord(path string, rec history.Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

type listedFile struct {
	filename string
	legacyID string // full id embedded in a legacy name
	friendly string // friendly part of a current name
}

// List enumerates session files in lexicographic order (os.ReadDir
// sorts by name). Legacy files are hidden when a current-format file
// carries the same short id. A file that cannot be read or parsed
// still produces an entry, with the error attached, so one bad record
// does not break the listing. The WAL file is not a session and is
// skipped.
func (s *Store) List() []Info {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	var files []listedFile
	for _, name := range names {
		if !strings.HasSuffix(name, fileExt) || name == walFilename {
			continue
		}
		if isLegacyName(name) {
			id := legacySessionID(name)
			if hasCurrentFormat(names, ShortID(id)) {
				continue
			}
			files = append(files, listedFile{filename: name, legacyID: id})
			continue
		}
		friendly, _, ok := splitCurrentName(name)
		if !ok {
			continue
		}
		files = append(files, listedFile{filename: name, friendly: friendly})
	}

	out := make([]Info, 0, len(files))
	for _, f := range files {
		out = append(out, s.describe(f))
	}
	return out
}

func hasCurrentFormat(names []string, shortID string) bool {
	suffix := "_" + shortID + fileExt
	for _, name := range names {
		if strings.HasSuffix(name, suffix) && !isLegacyName(name) {
			return true
		}
	}
	return false
}

func (s *Store) describe(f listedFile) Info {
	display := f.friendly
	if display == "" {
		display = ShortID(f.legacyID)
	}
	fallbackID := f.legacyID
	if fallbackID == "" {
		fallbackID = "unknown"
	}

	path := filepath.Join(s.dir, f.filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{ID: fallbackID, DisplayName: display, Err: fmt.Errorf("read %s: %w", f.filename, err)}
	}
	var rec history.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Info{ID: fallbackID, DisplayName: display, Err: fmt.Errorf("decode %s: %w", f.filename, ErrDecode)}
	}

	id := rec.SessionID
	if id == "" {
		id = fallbackID
	}
	if f.friendly == "" {
		display = ShortID(id)
	}

	last := noActivity
	if n := len(rec.History); n > 0 {
		if t, ok := history.ParseTimestamp(rec.History[n-1].Timestamp); ok {
			last = t.Format("2006-01-02 15:04")
		}
	}

	return Info{
		ID:           id,
		DisplayName:  display,
		MessageCount: len(rec.History),
		LastActivity: last,
	}
}

// DisplayName returns the friendly-name part of a current-format
// filename, or the short id for legacy files and sessions with no file
// at all.
func (s *Store) DisplayName(sessionID string) string {
	path, ok := s.Find(sessionID)
	if !ok {
		return ShortID(sessionID)
	}
	name := filepath.Base(path)
	if isLegacyName(name) {
		return ShortID(sessionID)
	}
	if friendly, _, ok := splitCurrentName(name); ok && friendly != "" {
		return friendly
	}
	return ShortID(sessionID)
}

// Remove deletes the session's file.
func (s *Store) Remove(sessionID string) error {
	path, ok := s.Find(sessionID)
	if !ok {
		return fmt.Errorf("session %q: %w", ShortID(sessionID), ErrNotFound)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Rename gives a session a user-chosen friendly name and returns the
// sanitized form actually used. Unlike save-time naming there is no
// "conversation" fallback: a name that sanitizes to nothing is an
// error, and a target path occupied by a different file is a
// collision. Neither failure touches any file.
func (s *Store) Rename(sessionID, newName string) (string, error) {
	if strings.TrimSpace(newName) == "" {
		return "", ErrEmptyName
	}
	oldPath, ok := s.Find(sessionID)
	if !ok {
		return "", fmt.Errorf("session %q: %w", ShortID(sessionID), ErrNotFound)
	}
	sanitized := Sanitize(newName, maxFriendlyLen)
	if sanitized == "" {
		return "", ErrEmptyName
	}
	newPath := filepath.Join(s.dir, sanitized+"_"+ShortID(sessionID)+fileExt)
	if newPath != oldPath {
		if _, err := os.Stat(newPath); err == nil {
			return "", fmt.Errorf("%q: %w", filepath.Base(newPath), ErrNameCollision)
		}
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("rename session file: %w", err)
	}
	return sanitized, nil
}
