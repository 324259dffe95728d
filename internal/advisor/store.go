package advisor

import "context"

// Store hands out sessions for exclusive use. Acquire returns a private copy
// of the session and marks it busy; Release writes the copy back and clears
// the busy mark. A second Acquire while busy fails with ErrSessionBusy, which
// is how concurrent operations on one session are rejected rather than
// interleaved. Independent sessions never contend.
type Store interface {
	Acquire(ctx context.Context, id string) (*Session, error)
	Release(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
