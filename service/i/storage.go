package i

import (
	"context"

	"github.com/google/uuid"
)

// LayoutStore keeps encoded maze layouts.
type LayoutStore interface {
	// Save stores the encoded layout of a maze, replacing any previous layout.
	Save(ctx context.Context, id uuid.UUID, encoded string) error

	// Load returns the encoded layout of a maze or ErrNotFound.
	Load(ctx context.Context, id uuid.UUID) (string, error)
}

// Locker hands out exclusive locks on maze IDs.
type Locker interface {
	// Lock acquires the lock of a maze without waiting. It returns ErrLocked when the lock is held.
	Lock(ctx context.Context, id uuid.UUID) (unlock func(), err error)
}

// LeaderboardEntry is a run ranked by the step count of its final episode.
type LeaderboardEntry struct {
	RunID uuid.UUID `json:"run_id"`
	Moves int       `json:"moves"`
}

// Leaderboard ranks the runs of every maze, fewest final moves first.
type Leaderboard interface {
	Record(ctx context.Context, mazeID, runID uuid.UUID, moves int) error
	Best(ctx context.Context, mazeID uuid.UUID, n int64) ([]LeaderboardEntry, error)
}
