// Package history tracks recently used (subject, style) pairs so the
// composer can avoid near-term repeats until the catalog has been cycled.
package history

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// DefaultSize keeps the last 80 combinations, enough to force variety
	// against a catalog of ~55 subjects x 33 styles without ever exhausting it.
	DefaultSize = 80

	// keyLength truncates stored pair members so minor wording edits to a
	// catalog entry don't invalidate its history.
	keyLength = 40
)

// Pair is one recorded (subject, style) combination, truncated to keyLength.
type Pair struct {
	Subject string
	Style   string
}

// Tracker is the bounded history window. Persistence is best-effort: a
// missing or corrupt file loads as empty history, and write failures are
// logged and swallowed; losing history degrades variety, never generation.
type Tracker struct {
	path  string
	size  int
	pairs []Pair
}

type historyFile struct {
	Used [][2]string `json:"used"`
}

// Load reads the history file at path. Any read or parse error yields an
// empty tracker.
func Load(path string, size int) *Tracker {
	if size <= 0 {
		size = DefaultSize
	}
	t := &Tracker{path: path, size: size}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read prompt history, starting empty", "path", path, "error", err)
		}
		return t
	}

	var f historyFile
	if err := json.Unmarshal(data, &f); err != nil {
		slog.Warn("corrupt prompt history, starting empty", "path", path, "error", err)
		return t
	}

	for _, u := range f.Used {
		t.pairs = append(t.pairs, Pair{Subject: u[0], Style: u[1]})
	}
	t.trim()
	return t
}

// Record appends a truncated pair, evicts past the bound, and persists.
func (t *Tracker) Record(subject, style string) {
	t.pairs = append(t.pairs, Pair{Subject: truncate(subject), Style: truncate(style)})
	t.trim()
	t.save()
}

// Contains reports whether the truncated pair is in the current window.
func (t *Tracker) Contains(subject, style string) bool {
	key := Pair{Subject: truncate(subject), Style: truncate(style)}
	for _, p := range t.pairs {
		if p == key {
			return true
		}
	}
	return false
}

// Len returns the number of pairs in the window.
func (t *Tracker) Len() int {
	return len(t.pairs)
}

func (t *Tracker) trim() {
	if len(t.pairs) > t.size {
		t.pairs = t.pairs[len(t.pairs)-t.size:]
	}
}

func (t *Tracker) save() {
	f := historyFile{Used: make([][2]string, 0, len(t.pairs))}
	for _, p := range t.pairs {
		f.Used = append(f.Used, [2]string{p.Subject, p.Style})
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		slog.Warn("could not encode prompt history", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		slog.Warn("could not create history directory", "error", err)
		return
	}
	if err := os.WriteFile(t.path, data, 0644); err != nil {
		slog.Warn("could not write prompt history", "path", t.path, "error", err)
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > keyLength {
		return string(r[:keyLength])
	}
	return s
}
