// Package memory implements an in-process storage backend. Contents live for
// the lifetime of the process, with an optional byte quota imitating browser
// storage limits.
package memory

import (
	"errors"
	"sync"
)

// ErrQuotaExceeded is returned by SetItem when a write would push usage past
// the configured quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Backend is a quota-aware in-memory string store. Safe for use from
// multiple goroutines, although callers are expected to serialize logically
// related mutations themselves.
type Backend struct {
	mu    sync.Mutex
	items map[string]string
	quota int64
}

// New returns an unbounded in-memory backend.
func New() *Backend {
	return &Backend{items: make(map[string]string)}
}

// NewWithQuota returns a backend that refuses writes once the combined size
// of keys and values would exceed quota bytes.
func NewWithQuota(quota int64) *Backend {
	return &Backend{items: make(map[string]string), quota: quota}
}

func (b *Backend) GetItem(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.items[key]
	return v, ok, nil
}

func (b *Backend) SetItem(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.quota > 0 {
		var used int64
		for k, v := range b.items {
			if k == key {
				continue
			}
			used += int64(len(k) + len(v))
		}
		if used+int64(len(key)+len(value)) > b.quota {
			return ErrQuotaExceeded
		}
	}
	b.items[key] = value
	return nil
}

func (b *Backend) RemoveItem(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.items, key)
	return nil
}

func (b *Backend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = make(map[string]string)
	return nil
}

func (b *Backend) Len() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items), nil
}
