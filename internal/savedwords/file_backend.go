package savedwords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores every key in one JSON object on disk, the way a
// browser's extension local storage area holds its items.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) readAll() (map[string]json.RawMessage, error) {
	contents, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", b.path, err)
	}
	items := map[string]json.RawMessage{}
	if len(contents) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(contents, &items); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", b.path, err)
	}
	// a "null" document decodes into a nil map
	if items == nil {
		items = map[string]json.RawMessage{}
	}
	return items, nil
}

func (b *FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.readAll()
	if err != nil {
		return nil, false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

func (b *FileBackend) Set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	items, err := b.readAll()
	if err != nil {
		return err
	}
	items[key] = json.RawMessage(value)

	contents, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent > %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(contents); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file.Write > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}
