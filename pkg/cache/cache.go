package cache

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/event"
	"github.com/stephenrocksolid/gts-shop-scheduler/pkg/store"
)

const (
	// TTL is the freshness window beyond which an entry is a miss.
	TTL = 5 * time.Minute

	// MaxEntries bounds how many snapshots are retained across all
	// fingerprints.
	MaxEntries = 5
)

// Entry is a persisted snapshot of one fetch result.
type Entry struct {
	Events    []event.Event   `json:"events"`
	Signature string          `json:"signature"`
	Timestamp event.Timestamp `json:"timestamp"`
}

// Store keeps event-list snapshots in the shared KV namespace. It is a pure
// optimization: every operation fails soft, and a broken or missing entry is
// simply a miss.
type Store struct {
	kv  *store.KV
	ttl time.Duration
	max int
	now func() time.Time
}

// New wraps kv with the default freshness window and retention bound.
func New(kv *store.KV) *Store {
	return &Store{
		kv:  kv,
		ttl: TTL,
		max: MaxEntries,
		now: time.Now,
	}
}

// Get returns the cached entry for fingerprint, or nil on a miss. Corrupt,
// timestamp-less, and expired entries are deleted on the way out. Never
// errors.
func (s *Store) Get(fingerprint string) *Entry {
	data, err := s.kv.Read(fingerprint)
	if err != nil {
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = s.kv.Erase(fingerprint)
		return nil
	}
	if entry.Timestamp.IsZero() {
		_ = s.kv.Erase(fingerprint)
		return nil
	}
	if s.now().Sub(entry.Timestamp.Time) > s.ttl {
		_ = s.kv.Erase(fingerprint)
		return nil
	}
	return &entry
}

// Put stores a fresh snapshot under fingerprint, computing the signature when
// the caller did not. Serialization or write failures drop the write
// silently. Retention is enforced after every put.
func (s *Store) Put(ctx context.Context, fingerprint string, events []event.Event, signature string) {
	if signature == "" {
		signature = event.Signature(events)
	}
	entry := Entry{
		Events:    events,
		Signature: signature,
		Timestamp: event.Timestamp{Time: s.now()},
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.kv.Write(fingerprint, data); err != nil {
		return
	}
	s.evictOldest(ctx, fingerprint)
}

// Touch bumps only the timestamp of an existing entry, keeping it fresh
// after a revalidation confirmed nothing changed. A missing or corrupt entry
// is left alone.
func (s *Store) Touch(fingerprint string) {
	data, err := s.kv.Read(fingerprint)
	if err != nil {
		return
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return
	}
	entry.Timestamp = event.Timestamp{Time: s.now()}
	updated, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_ = s.kv.Write(fingerprint, updated)
}

// InvalidateAll deletes every cached snapshot. Called after any mutation so
// the next fetch sees server truth.
func (s *Store) InvalidateAll(ctx context.Context) {
	for _, key := range s.kv.Keys(ctx, Prefix+":") {
		_ = s.kv.Erase(key)
	}
}

// evictOldest trims the cache namespace to the retention bound, never
// counting out the entry just written.
func (s *Store) evictOldest(ctx context.Context, excluding string) {
	type aged struct {
		key string
		at  time.Time
	}

	entries := make([]aged, 0, s.max)
	for _, key := range s.kv.Keys(ctx, Prefix+":") {
		if key == excluding {
			continue
		}
		data, err := s.kv.Read(key)
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil || entry.Timestamp.IsZero() {
			_ = s.kv.Erase(key)
			continue
		}
		entries = append(entries, aged{key: key, at: entry.Timestamp.Time})
	}

	keep := s.max - 1
	if len(entries) <= keep {
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].at.Before(entries[j].at)
	})
	for _, old := range entries[:len(entries)-keep] {
		_ = s.kv.Erase(old.key)
	}
}
