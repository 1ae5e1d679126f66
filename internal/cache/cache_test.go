package cache

import "testing"

func TestGetMissingKey(t *testing.T) {
	c := New[string](2)
	if _, ok := c.Get("nope"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestPutAndGet(t *testing.T) {
	c := New[string](2)
	c.Put("a", "alpha")

	value, ok := c.Get("a")
	if !ok || value != "alpha" {
		t.Fatalf("expected alpha, got %q (hit %v)", value, ok)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected hit for a")
	}

	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to survive")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestPutReplacesExistingKey(t *testing.T) {
	c := New[int](2)
	c.Put("a", 1)
	c.Put("a", 2)

	value, ok := c.Get("a")
	if !ok || value != 2 {
		t.Fatalf("expected replacement value 2, got %d", value)
	}
	if c.Len() != 1 {
		t.Fatalf("expected single entry, got %d", c.Len())
	}
}

func TestRemove(t *testing.T) {
	c := New[int](2)
	c.Put("a", 1)
	c.Remove("a")
	c.Remove("a") // removing twice is a no-op

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected removed key to miss")
	}
}
