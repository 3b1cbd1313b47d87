package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string](DefaultConfig())
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Error("Get of a missing key should miss")
	}
	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v; want 1, true", v, ok)
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses; want 1, 1", hits, misses)
	}
	if rate != 50 {
		t.Errorf("hit rate = %v, want 50", rate)
	}

	c.Delete("a")
	if c.Size() != 0 {
		t.Errorf("Size() after Delete = %d", c.Size())
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](Config{TTL: time.Hour})
	defer c.Close()

	c.SetWithTTL("short", 1, time.Millisecond)
	c.SetWithTTL("forever", 2, 0)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry should miss")
	}
	if v, ok := c.Get("forever"); !ok || v != 2 {
		t.Errorf("Get(forever) = %d, %v", v, ok)
	}
}

func TestEviction(t *testing.T) {
	c := New[int](Config{MaxItems: 2, TTL: time.Hour})
	defer c.Close()

	c.SetWithTTL("first", 1, time.Minute)
	c.SetWithTTL("second", 2, time.Hour)
	c.Set("second", 3) // overwrite does not evict
	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}

	c.Set("third", 4)
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("entry closest to expiry should be evicted")
	}
}

func TestGetOrSet(t *testing.T) {
	c := New[int](DefaultConfig())
	defer c.Close()

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("answer", compute)
		if err != nil || v != 42 {
			t.Fatalf("GetOrSet() = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrSet("bad", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrSet() error = %v, want boom", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("errors must not be cached")
	}
}

func TestClearAndClose(t *testing.T) {
	c := New[int](Config{CleanupInterval: time.Millisecond})
	c.Set("a", 1)
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d", c.Size())
	}
	c.Close()
	c.Close()
}
