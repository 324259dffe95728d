package advisor

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store with TTL-based
// garbage collection of idle sessions.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]*memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

type memoryEntry struct {
	session  Session
	busy     bool
	lastSeen time.Time
}

// NewMemoryStore constructs a MemoryStore. Sessions idle longer than ttl are
// removed by Sweep.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Acquire returns a copy of the session for exclusive use, creating it in the
// greeting phase on first sight.
func (s *MemoryStore) Acquire(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[id]
	if !ok {
		entry = &memoryEntry{session: *NewSession(id), lastSeen: s.now()}
		s.data[id] = entry
	}
	if entry.busy {
		return nil, ErrSessionBusy
	}
	entry.busy = true
	copied := entry.session
	return &copied, nil
}

// Release writes the session back and clears the busy mark.
func (s *MemoryStore) Release(ctx context.Context, sess *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[sess.ID]
	if !ok {
		entry = &memoryEntry{}
		s.data[sess.ID] = entry
	}
	sess.LastSeenAt = s.now()
	entry.session = *sess
	entry.busy = false
	entry.lastSeen = sess.LastSeenAt
	return nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// Sweep drops sessions idle past the TTL. Busy sessions are never dropped.
// It returns the number of removed sessions.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, entry := range s.data {
		if entry.busy {
			continue
		}
		if entry.lastSeen.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

var _ Store = (*MemoryStore)(nil)
