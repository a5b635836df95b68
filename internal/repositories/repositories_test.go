package repositories

import (
	"sync"
	"time"

	"github.com/pixelforo/gameblog/internal/media"
	"github.com/pixelforo/gameblog/internal/storage"
	"github.com/pixelforo/gameblog/internal/storage/memory"
)

// testClock returns a deterministic clock that advances one second per call,
// so every created record gets a distinct, increasing timestamp.
func testClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

var testEpoch = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestStore() *storage.Store {
	return storage.New(memory.New())
}

func newTestPostRepo(store *storage.Store) (*StorePostRepository, *media.Registry) {
	registry := media.NewRegistry()
	repo := NewStorePostRepository(store, registry)
	repo.now = testClock(testEpoch)
	return repo, registry
}

func newTestCommentRepo(store *storage.Store) *StoreCommentRepository {
	repo := NewStoreCommentRepository(store)
	repo.now = testClock(testEpoch.Add(time.Hour))
	return repo
}
