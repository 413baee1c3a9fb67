// Package savedwords persists translations the user chose to keep.
package savedwords

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StorageKey is the single key the store writes under.
const StorageKey = "savedWords"

// SavedAtLayout matches JavaScript's Date.toISOString.
const SavedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Entry is one saved translation.
type Entry struct {
	Original       string    `json:"original" yaml:"original"`
	Translated     string    `json:"translated" yaml:"translated"`
	SourceLanguage string    `json:"sourceLanguage" yaml:"source_language"`
	TargetLanguage string    `json:"targetLanguage" yaml:"target_language"`
	SavedAt        time.Time `json:"savedAt" yaml:"saved_at"`
}

// Key normalizes an original text into its storage key.
func Key(original string) string {
	return strings.ToLower(strings.TrimSpace(original))
}

func (e Entry) Key() string {
	return Key(e.Original)
}

func (e Entry) MarshalJSON() ([]byte, error) {
	type entryJSON struct {
		Original       string `json:"original"`
		Translated     string `json:"translated"`
		SourceLanguage string `json:"sourceLanguage"`
		TargetLanguage string `json:"targetLanguage"`
		SavedAt        string `json:"savedAt"`
	}
	return json.Marshal(entryJSON{
		Original:       e.Original,
		Translated:     e.Translated,
		SourceLanguage: e.SourceLanguage,
		TargetLanguage: e.TargetLanguage,
		SavedAt:        e.SavedAt.UTC().Format(SavedAtLayout),
	})
}

// Words is the persisted mapping from key to entry. Its JSON form is an
// object whose member order is the insertion order.
type Words struct {
	keys    []string
	entries map[string]Entry
}

func NewWords() *Words {
	return &Words{entries: make(map[string]Entry)}
}

func (w *Words) Len() int {
	return len(w.keys)
}

func (w *Words) Has(key string) bool {
	_, ok := w.entries[key]
	return ok
}

func (w *Words) Get(key string) (Entry, bool) {
	entry, ok := w.entries[key]
	return entry, ok
}

// Add appends entry under key. It returns false when key already exists.
func (w *Words) Add(key string, entry Entry) bool {
	if w.Has(key) {
		return false
	}
	w.keys = append(w.keys, key)
	w.entries[key] = entry
	return true
}

// Entries returns the entries in insertion order.
func (w *Words) Entries() []Entry {
	entries := make([]Entry, 0, len(w.keys))
	for _, key := range w.keys {
		entries = append(entries, w.entries[key])
	}
	return entries
}

func (w *Words) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range w.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal(%s) > %w", key, err)
		}
		v, err := json.Marshal(w.entries[key])
		if err != nil {
			return nil, fmt.Errorf("json.Marshal(entry %s) > %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (w *Words) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("decoder.Token > %w", err)
	}
	if token == nil {
		*w = *NewWords()
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("saved words must be a JSON object, got %v", token)
	}

	words := NewWords()
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("decoder.Token > %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", token)
		}
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			return fmt.Errorf("decoder.Decode(%s) > %w", key, err)
		}
		if !words.Add(key, entry) {
			// Later duplicates in a hand-edited document overwrite, as JSON.parse does
			words.entries[key] = entry
		}
	}
	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("decoder.Token > %w", err)
	}
	*w = *words
	return nil
}
