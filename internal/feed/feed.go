// internal/feed/feed.go
package feed

import (
	"sync"

	"github.com/sgbaird/pioreactor/internal/model"
)

// Feed is an ordered, capacity-bounded list of recent log entries, newest
// first. The capacity is an explicit configuration value, independent of
// whatever seed the feed starts with. Message delivery and rendering run on
// different goroutines, so all access goes through the mutex.
type Feed struct {
	mu       sync.RWMutex
	entries  []model.LogEntry
	capacity int
}

// New creates a feed holding at most capacity entries. Seed entries beyond
// capacity are discarded from the old end.
func New(capacity int, seed []model.LogEntry) *Feed {
	if capacity < 1 {
		capacity = 1
	}
	entries := make([]model.LogEntry, 0, capacity)
	for _, e := range seed {
		if len(entries) == capacity {
			break
		}
		entries = append(entries, e)
	}
	return &Feed{entries: entries, capacity: capacity}
}

// Append inserts entry at the front, then evicts the oldest entries until the
// feed is back within capacity. An under-full feed never shrinks.
func (f *Feed) Append(entry model.LogEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append([]model.LogEntry{entry}, f.entries...)
	for len(f.entries) > f.capacity {
		f.entries = f.entries[:len(f.entries)-1]
	}
}

// Snapshot returns a copy of the current entries for rendering.
func (f *Feed) Snapshot() []model.LogEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]model.LogEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the current number of entries.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Capacity returns the configured maximum number of entries.
func (f *Feed) Capacity() int {
	return f.capacity
}

// Clear removes all entries.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = f.entries[:0]
}
