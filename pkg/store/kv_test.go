package store

import (
	"context"
	"testing"
	"time"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string              { return t.path }
func (t testConfig) BaseURL() string               { return "http://localhost:8069" }
func (t testConfig) CSRFToken() string             { return "" }
func (t testConfig) DebounceWindow() time.Duration { return 300 * time.Millisecond }

func TestKVRoundTrip(t *testing.T) {
	kv, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	key := "cal-events-cache:2025-01-01:2025-01-31:1,2:completed:"
	if err := kv.Write(key, []byte(`{"events":[]}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := kv.Read(key)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `{"events":[]}` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestKVKeyTransformRoundTrip(t *testing.T) {
	keys := []string{
		"gts-selected-calendars",
		"cal-events-cache:2025-01-01:2025-02-01:1:all:truck near: depot",
		"gts-calendar-filters",
	}
	for _, key := range keys {
		pk := keyToPathTransform(key)
		if got := pathToKeyTransform(pk); got != key {
			t.Fatalf("transform not invertible: %q -> %q", key, got)
		}
	}
}

func TestKVKeysPrefixFilter(t *testing.T) {
	kv, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	_ = kv.Write("cal-events-cache:a", []byte("1"))
	_ = kv.Write("cal-events-cache:b", []byte("2"))
	_ = kv.Write("gts-selected-calendars", []byte("[]"))

	got := kv.Keys(context.Background(), "cal-events-cache:")
	if len(got) != 2 {
		t.Fatalf("expected 2 cache keys, got %v", got)
	}
	all := kv.Keys(context.Background(), "")
	if len(all) != 3 {
		t.Fatalf("expected 3 keys, got %v", all)
	}
}

func TestWatchSurfacesRemovals(t *testing.T) {
	base := t.TempDir()
	kv, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	key := "cal-events-cache:2025-01-01:2025-02-01:1::"
	if err := kv.Write(key, []byte("{}")); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := kv.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before erasing.
	time.Sleep(50 * time.Millisecond)

	if err := kv.Erase(key); err != nil {
		t.Fatalf("erase: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Removed && evt.Prefix == "cal-events-cache" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for removal event")
		}
	}
}
