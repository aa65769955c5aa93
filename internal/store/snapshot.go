package store

import (
	"sync"

	"github.com/garfunkel/nastie/internal/view"
)

// Snapshot is the thread-safe holder of the current jail view.
//
// Writers publish a complete replacement map; readers always observe either
// the previous map or the new one, never a partial update. The map handed
// out by [Snapshot.Current] is shared, not copied: callers must treat it as
// read-only, and writers must never touch a map after publishing it.
type Snapshot struct {
	mu    sync.RWMutex
	jails map[string]view.Jail
}

// NewSnapshot creates an empty [Snapshot].
//
// Until the first [Snapshot.Replace], readers see an empty map rather than
// nil, so the dashboard renders its empty state instead of failing.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		jails: make(map[string]view.Jail),
	}
}

// Replace atomically swaps in a new jail map, discarding the previous one.
// A nil map is stored as an empty map.
func (s *Snapshot) Replace(jails map[string]view.Jail) {
	if jails == nil {
		jails = make(map[string]view.Jail)
	}

	s.mu.Lock()
	s.jails = jails
	s.mu.Unlock()
}

// Current returns the most recently published jail map.
//
// The returned map must not be modified.
func (s *Snapshot) Current() map[string]view.Jail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.jails
}
