// Package media issues session-scoped blob handles for uploaded files,
// mirroring object URLs: a handle stays valid until it is explicitly revoked
// or the process exits.
package media

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

const scheme = "blob:"

// Registry tracks the live blob handles for this process. Handles that are
// never revoked leak for the lifetime of the session, so the post that
// created one must release it when the media is replaced or deleted.
type Registry struct {
	mu      sync.Mutex
	handles map[string]string // url -> file name
}

// NewRegistry returns an empty handle registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]string)}
}

// CreateURL issues a fresh blob handle for the named file.
func (r *Registry) CreateURL(name string) string {
	url := scheme + uuid.NewString()
	r.mu.Lock()
	r.handles[url] = name
	r.mu.Unlock()
	return url
}

// Revoke releases a blob handle. Unknown or already-revoked handles are
// ignored.
func (r *Registry) Revoke(url string) {
	if !strings.HasPrefix(url, scheme) {
		return
	}
	r.mu.Lock()
	delete(r.handles, url)
	r.mu.Unlock()
}

// Active returns the number of live handles.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
