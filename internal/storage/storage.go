// Package storage provides a validated key-value adapter over a pluggable
// backend. Values are serialized to JSON strings; every write is verified by
// re-reading the key, and every operation starts with an availability probe
// of the backing store.
package storage

import (
	"encoding/json"
	"strings"
)

// Backend is the raw string store underneath the adapter. Implementations
// live in the subpackages (memory, file, postgres, mongo) and only deal in
// opaque strings; validation, serialization and verification happen here.
type Backend interface {
	// GetItem returns the stored string for key, reporting ok=false when
	// the key is absent.
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Clear() error
	// Len returns the number of stored keys.
	Len() (int, error)
}

const (
	probeKey = "__storage_probe__"
	spaceKey = "__space_probe__"

	// maxSpaceProbe caps the available-space search for backends that
	// never refuse a write.
	maxSpaceProbe = 64 << 20
)

// Store is the validated adapter callers use. All repository state goes
// through one of these.
type Store struct {
	backend Backend
}

// New wraps a backend in the validated adapter.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// probe verifies the backing store accepts writes and deletes by round
// tripping a sentinel key. Failure means the store is unavailable.
func (s *Store) probe() error {
	if err := s.backend.SetItem(probeKey, probeKey); err != nil {
		return &StorageError{Op: OpValidation, Message: "storage is not available", Err: err}
	}
	if err := s.backend.RemoveItem(probeKey); err != nil {
		return &StorageError{Op: OpValidation, Message: "storage is not available", Err: err}
	}
	return nil
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return &StorageError{Op: OpValidation, Message: "invalid key"}
	}
	return nil
}

// Get reads the JSON value stored under key into v. It reports ok=false with
// no error when the key is absent, leaving v untouched.
func (s *Store) Get(key string, v any) (bool, error) {
	if err := s.probe(); err != nil {
		return false, err
	}
	if err := validateKey(key); err != nil {
		return false, err
	}

	item, ok, err := s.backend.GetItem(key)
	if err != nil {
		return false, &StorageError{Op: OpGet, Message: "failed to read stored data", Err: err}
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(item), v); err != nil {
		return false, &StorageError{Op: OpParse, Message: "failed to parse stored data", Err: err}
	}
	return true, nil
}

// Set serializes v to JSON and stores it under key, then re-reads the key and
// fails with a verification error unless the stored string equals what was
// written. That catches silent write failures and quota truncation.
func (s *Store) Set(key string, v any) error {
	if err := s.probe(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	serialized, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: OpValidation, Message: "value is not serializable", Err: err}
	}

	if err := s.backend.SetItem(key, string(serialized)); err != nil {
		return &StorageError{Op: OpSet, Message: "failed to store data", Err: err}
	}

	saved, ok, err := s.backend.GetItem(key)
	if err != nil {
		return &StorageError{Op: OpSet, Message: "failed to store data", Err: err}
	}
	if !ok || saved != string(serialized) {
		return &StorageError{Op: OpVerification, Message: "stored data failed write verification"}
	}
	return nil
}

// Remove deletes key from the store and verifies the key is gone afterwards.
func (s *Store) Remove(key string) error {
	if err := s.probe(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.backend.RemoveItem(key); err != nil {
		return &StorageError{Op: OpRemove, Message: "failed to remove stored data", Err: err}
	}

	if _, ok, err := s.backend.GetItem(key); err != nil {
		return &StorageError{Op: OpRemove, Message: "failed to remove stored data", Err: err}
	} else if ok {
		return &StorageError{Op: OpVerification, Message: "stored data failed remove verification"}
	}
	return nil
}

// Clear wipes the whole store and verifies it is empty afterwards.
func (s *Store) Clear() error {
	if err := s.probe(); err != nil {
		return err
	}

	if err := s.backend.Clear(); err != nil {
		return &StorageError{Op: OpClear, Message: "failed to clear storage", Err: err}
	}

	n, err := s.backend.Len()
	if err != nil {
		return &StorageError{Op: OpClear, Message: "failed to clear storage", Err: err}
	}
	if n != 0 {
		return &StorageError{Op: OpVerification, Message: "storage failed clear verification"}
	}
	return nil
}

// AvailableSpace estimates how many whole KiB the store will still accept in
// a single value, by binary-searching the largest writable payload under a
// scratch key. Backends without a quota report the probe ceiling.
func (s *Store) AvailableSpace() (int, error) {
	if err := s.probe(); err != nil {
		return 0, &StorageError{Op: OpSpace, Message: "failed to measure available space", Err: err}
	}
	defer s.backend.RemoveItem(spaceKey)

	writable := func(n int) bool {
		if err := s.backend.SetItem(spaceKey, strings.Repeat("a", n)); err != nil {
			return false
		}
		return true
	}

	if writable(maxSpaceProbe) {
		return maxSpaceProbe >> 10, nil
	}

	lo, hi := 0, maxSpaceProbe // lo writable, hi not
	for lo+1 < hi {
		mid := lo + (hi-lo)/2
		if writable(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo >> 10, nil
}
