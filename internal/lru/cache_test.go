package lru

import (
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if got := New[string, int](0).Capacity(); got != DefaultCapacity {
		t.Errorf("New(0).Capacity() = %d, want %d", got, DefaultCapacity)
	}
}

func TestGetSet(t *testing.T) {
	c := New[string, int](10)
	c.Set("key1", 42)

	if val, ok := c.Get("key1"); !ok || val != 42 {
		t.Errorf("Get(key1) = %d, %v; want 42, true", val, ok)
	}
	if _, ok := c.Get("nonexistent"); ok {
		t.Error("expected nonexistent key to not exist")
	}

	c.Set("key1", 7)
	if val, _ := c.Get("key1"); val != 7 {
		t.Errorf("expected overwritten value 7, got %d", val)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after overwrite, got %d", c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("a")
	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to be cached", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("expected 1 eviction, got %d", got)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	calls := 0
	create := func(v int, keep bool) func() (int, bool) {
		return func() (int, bool) {
			calls++
			return v, keep
		}
	}

	if v := c.GetOrCreate("k", create(100, true)); v != 100 {
		t.Errorf("expected 100, got %d", v)
	}
	if v := c.GetOrCreate("k", create(200, true)); v != 100 {
		t.Errorf("expected cached 100, got %d", v)
	}
	if calls != 1 {
		t.Errorf("expected create called once, got %d", calls)
	}

	if v := c.GetOrCreate("skip", create(5, false)); v != 5 {
		t.Errorf("expected 5, got %d", v)
	}
	if _, ok := c.Get("skip"); ok {
		t.Error("expected a rejected value to stay uncached")
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Error("expected Delete to return true for existing key")
	}
	if c.Delete("a") {
		t.Error("expected Delete to return false for missing key")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	c.Set("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Error("cache unusable after Clear")
	}
}

func TestStats(t *testing.T) {
	c := New[string, int](10)
	if c.Stats().HitRate() != 0 {
		t.Error("expected zero hit rate before any lookup")
	}
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Hits != 3 || s.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 3/1", s.Hits, s.Misses)
	}
	if s.HitRate() != 0.75 {
		t.Errorf("HitRate() = %v, want 0.75", s.HitRate())
	}

	c.ResetStats()
	if s := c.Stats(); s.Hits != 0 || s.Misses != 0 || s.Len != 1 {
		t.Errorf("unexpected stats after reset: %+v", s)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](50)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g*31 + i) % 100)
				c.GetOrCreate(k, func() (int, bool) { return i, true })
				c.Get(k)
			}
		}()
	}
	wg.Wait()

	if c.Len() > c.Capacity() {
		t.Errorf("Len() = %d exceeds capacity %d", c.Len(), c.Capacity())
	}
}

func BenchmarkGet(b *testing.B) {
	c := New[string, int](1000)
	for i := range 100 {
		c.Set(strconv.Itoa(i), i)
	}
	for b.Loop() {
		c.Get("50")
	}
}
