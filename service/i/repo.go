package i

import (
	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for training run persistence operations.
type RunRepo interface {
	// Save inserts or updates a run in the repository.
	Save(run *domain.Run) error

	// ByID retrieves a run by its unique ID.
	// Returns ErrNotFound if the run does not exist.
	ByID(id uuid.UUID) (*domain.Run, error)

	// ByMaze retrieves up to limit runs of a maze, newest first.
	ByMaze(mazeID uuid.UUID, limit int64) ([]*domain.Run, error)
}
