package store

import (
	"context"
	"errors"

	"github.com/prepwise/backend/internal/domain/progress"
)

var (
	// ErrNotFound means no progress exists for the user key yet.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable means the backing store could not be reached. The
	// session layer degrades to in-memory operation instead of failing the
	// user's session.
	ErrUnavailable = errors.New("store unavailable")
)

// Store persists per-user progress state. Both operations are best-effort
// from the session's point of view: failures are surfaced, logged, and
// worked around, never fatal.
type Store interface {
	LoadProgress(ctx context.Context, userKey string) (*progress.State, error)
	SaveProgress(ctx context.Context, state *progress.State) error
	// ListProgress returns every stored state, for leaderboards.
	ListProgress(ctx context.Context) ([]*progress.State, error)
	Close() error
}
