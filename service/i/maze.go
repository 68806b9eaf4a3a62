package i

import (
	"context"
	"io"

	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/beka-birhanu/vinom-rl/game/maze"
	"github.com/google/uuid"
)

// MazeSpec describes how a new maze layout is produced. An encoded layout wins over
// generation, and generation over an empty grid of the given size. With nothing set
// the default layout is used.
type MazeSpec struct {
	Encoded  string
	Width    int
	Height   int
	Generate bool
	Seed     int64
}

// MazeService creates and edits stored mazes.
type MazeService interface {
	Create(ctx context.Context, spec MazeSpec) (uuid.UUID, *maze.Maze, error)
	Get(ctx context.Context, id uuid.UUID) (*maze.Maze, error)
	Toggle(ctx context.Context, id uuid.UUID, row, column int) (*maze.Maze, error)
	Resize(ctx context.Context, id uuid.UUID, width, height int) (*maze.Maze, error)
}

// TrainingService trains agents on stored mazes and serves the results.
type TrainingService interface {
	Train(ctx context.Context, mazeID uuid.UUID, params domain.RunParams) (*domain.Run, error)
	Run(id uuid.UUID) (*domain.Run, error)
	Runs(mazeID uuid.UUID, limit int64) ([]*domain.Run, error)
	Leaderboard(ctx context.Context, mazeID uuid.UUID, n int64) ([]LeaderboardEntry, error)
}

// ChartRenderer draws the move count of every episode of a run.
type ChartRenderer interface {
	RenderMoveHistory(w io.Writer, title string, moves []int) error
}
