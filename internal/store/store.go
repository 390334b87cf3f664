// Package store owns the process-wide current snapshot.
//
// Exactly one writer (the aggregation pipeline, on completion) publishes
// through Publish; any number of readers observe the latest complete
// snapshot through Current. Readers never see a half-built snapshot
// because publication swaps the whole pointer, never mutating one
// in place. Re-running the pipeline just publishes again; the last
// completed run wins.
package store

import (
	"sync"

	"github.com/calbret/showcase/internal/model"
)

// SnapshotStore holds the currently published snapshot.
//
// The zero value is not ready for use; create one with NewSnapshotStore.
type SnapshotStore struct {
	mu      sync.RWMutex
	current *model.Snapshot
}

// NewSnapshotStore creates an empty store. Current returns nil until
// the first Publish.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Publish atomically replaces the current snapshot.
func (s *SnapshotStore) Publish(snap *model.Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
}

// Current returns the latest published snapshot, or nil if no
// aggregation run has completed yet.
func (s *SnapshotStore) Current() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
