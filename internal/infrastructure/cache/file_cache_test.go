package cache

import (
	"testing"
	"time"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

func TestKeyIsDeterministic(t *testing.T) {
	a := Key("gpt-4o-mini", "system", "prompt")
	b := Key("gpt-4o-mini", "system", "prompt")
	if a != b {
		t.Fatalf("key not deterministic: %s vs %s", a, b)
	}
	if a == Key("gpt-4o", "system", "prompt") {
		t.Fatal("different models must hash differently")
	}
	if a == Key("gpt-4o-mini", "system", "other prompt") {
		t.Fatal("different prompts must hash differently")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Hour, 100)

	entry := domain.CacheEntry{
		Key:       Key("llama3.2", "sys", "hello"),
		Model:     "llama3.2",
		Reply:     "Hi Sarah!",
		CreatedAt: time.Now(),
	}
	if err := c.Set(entry); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, ok, err := c.Get(entry.Key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Reply != entry.Reply {
		t.Fatalf("reply = %q, want %q", got.Reply, entry.Reply)
	}
}

func TestGetMissAndEmptyKey(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Hour, 100)

	if _, ok, err := c.Get("deadbeef"); err != nil || ok {
		t.Fatalf("expected a clean miss, ok=%v err=%v", ok, err)
	}
	if _, ok, err := c.Get(""); err != nil || ok {
		t.Fatalf("empty key must miss, ok=%v err=%v", ok, err)
	}
}

func TestExpiredEntryIsEvicted(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Minute, 100)

	entry := domain.CacheEntry{
		Key:       Key("llama3.2", "sys", "stale"),
		Model:     "llama3.2",
		Reply:     "old reply",
		CreatedAt: time.Now().Add(-2 * time.Minute),
	}
	if err := c.Set(entry); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if _, ok, err := c.Get(entry.Key); err != nil || ok {
		t.Fatalf("expected expiry miss, ok=%v err=%v", ok, err)
	}
	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expired blob not removed, %d entries remain", len(entries))
	}
}

func TestEvictionCapsEntryCount(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Hour, 3)

	for _, prompt := range []string{"a", "b", "c", "d", "e"} {
		entry := domain.CacheEntry{
			Key:       Key("llama3.2", "sys", prompt),
			Model:     "llama3.2",
			Reply:     "reply " + prompt,
			CreatedAt: time.Now(),
		}
		if err := c.Set(entry); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) > 3 {
		t.Fatalf("eviction failed, %d entries remain", len(entries))
	}
}

func TestClear(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Hour, 100)

	entry := domain.CacheEntry{Key: Key("m", "s", "p"), Reply: "x", CreatedAt: time.Now()}
	if err := c.Set(entry); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty cache, got %d", len(entries))
	}
}
