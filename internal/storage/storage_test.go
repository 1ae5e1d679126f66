package storage

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStorePutGetDelete(t *testing.T) {
	store := NewMemoryStore()

	paste := Paste{ID: "abc", Text: "hello", CreatedAt: time.Now().UTC()}
	if err := store.Put(paste); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := store.Get("abc")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Text != "hello" {
		t.Fatalf("unexpected paste text %q", got.Text)
	}

	if err := store.Delete("abc"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get("abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreRejectsEmptyID(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Put(Paste{Text: "orphan"}); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestMemoryStorePurgesExpiredPastes(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))

	paste := Paste{
		ID:        "short-lived",
		Text:      "gone soon",
		CreatedAt: clock.Now(),
		ExpiresAt: clock.Now().Add(10 * time.Minute),
	}
	if err := store.Put(paste); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if _, err := store.Get("short-lived"); err != nil {
		t.Fatalf("expected paste before expiry, got %v", err)
	}

	clock.Advance(10 * time.Minute)
	if _, err := store.Get("short-lived"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}

	if n, _ := store.Len(); n != 0 {
		t.Fatalf("expected expired paste to be purged, %d left", n)
	}
}

func TestMemoryStoreNeverExpiresZeroTime(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))

	if err := store.Put(Paste{ID: "keep", Text: "forever", CreatedAt: clock.Now()}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	clock.Advance(1000 * time.Hour)
	if _, err := store.Get("keep"); err != nil {
		t.Fatalf("paste without expiry must survive, got %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pastes.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	paste := Paste{ID: "persisted", Text: "still here", CreatedAt: time.Now().UTC()}
	if err := store.Put(paste); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}

	got, err := reopened.Get("persisted")
	if err != nil {
		t.Fatalf("Get after reopen returned error: %v", err)
	}
	if got.Text != "still here" {
		t.Fatalf("unexpected paste text %q", got.Text)
	}
}

func TestFileStoreDeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pastes.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	if err := store.Put(Paste{ID: "gone", Text: "bye", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Delete("gone"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	if _, err := reopened.Get("gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted paste to stay deleted, got %v", err)
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "fresh.json"))
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	if n, _ := store.Len(); n != 0 {
		t.Fatalf("expected empty store, got %d pastes", n)
	}
}
