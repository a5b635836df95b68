package memory

import (
	"errors"
	"testing"
)

func TestSetGetRemove(t *testing.T) {
	t.Parallel()

	b := New()
	if err := b.SetItem("k", "v"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	v, ok, err := b.GetItem("k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("GetItem: got (%q, %v, %v)", v, ok, err)
	}

	if err := b.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := b.GetItem("k"); ok {
		t.Fatal("expected key to be removed")
	}
}

func TestQuota(t *testing.T) {
	t.Parallel()

	b := NewWithQuota(10)

	// "key" + "1234567" is exactly 10 bytes.
	if err := b.SetItem("key", "1234567"); err != nil {
		t.Fatalf("SetItem at quota: %v", err)
	}

	if err := b.SetItem("key2", "x"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	// Overwriting an existing key only counts the new value.
	if err := b.SetItem("key", "123456x"); err != nil {
		t.Fatalf("overwrite at quota: %v", err)
	}
}

func TestClearAndLen(t *testing.T) {
	t.Parallel()

	b := New()
	for _, k := range []string{"a", "b"} {
		if err := b.SetItem(k, k); err != nil {
			t.Fatalf("SetItem: %v", err)
		}
	}

	if n, _ := b.Len(); n != 2 {
		t.Fatalf("Len = %d, want 2", n)
	}
	if err := b.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n, _ := b.Len(); n != 0 {
		t.Fatalf("Len after clear = %d, want 0", n)
	}
}
