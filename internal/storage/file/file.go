// Package file implements a storage backend that keeps one file per key
// under a directory, giving the store durability across restarts.
package file

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const suffix = ".json"

// Backend stores each key as a file named after the escaped key.
type Backend struct {
	dir string
}

// Open prepares the storage directory, creating it if needed.
func Open(dir string) (*Backend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Backend{dir: dir}, nil
}

func (b *Backend) path(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key)+suffix)
}

func (b *Backend) GetItem(key string) (string, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (b *Backend) SetItem(key, value string) error {
	return os.WriteFile(b.path(key), []byte(value), 0o644)
}

func (b *Backend) RemoveItem(key string) error {
	err := os.Remove(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (b *Backend) Clear() error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		if err := os.Remove(filepath.Join(b.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) Len() (int, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), suffix) {
			n++
		}
	}
	return n, nil
}
