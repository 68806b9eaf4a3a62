package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-rl/config"
	"github.com/beka-birhanu/vinom-rl/game/maze"
	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/google/uuid"
)

const (
	// MaxEditableDimension caps the width and height accepted from clients.
	MaxEditableDimension = 127
)

var (
	ErrMazeNotFound   = errors.New("maze not found")
	ErrMazeBusy       = errors.New("maze is being trained")
	ErrInvalidLayout  = errors.New("invalid maze layout")
	ErrInvalidRequest = errors.New("invalid request")
)

var _ i.MazeService = &MazeService{}

// MazeService creates mazes and applies edits to their stored layouts.
type MazeService struct {
	layouts i.LayoutStore
	locker  i.Locker
	logger  *log.Logger
}

// MazeServiceConfig holds the dependencies of a MazeService.
type MazeServiceConfig struct {
	Layouts i.LayoutStore
	Locker  i.Locker
	Logger  *log.Logger
}

// NewMazeService creates a MazeService.
func NewMazeService(c *MazeServiceConfig) (*MazeService, error) {
	if c.Layouts == nil || c.Locker == nil || c.Logger == nil {
		return nil, fmt.Errorf("%w: maze service dependencies are missing", ErrInvalidRequest)
	}
	return &MazeService{
		layouts: c.Layouts,
		locker:  c.Locker,
		logger:  c.Logger,
	}, nil
}

// Create builds a maze from the spec and stores it under a fresh ID.
func (s *MazeService) Create(ctx context.Context, spec i.MazeSpec) (uuid.UUID, *maze.Maze, error) {
	m, err := BuildMaze(spec)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	if err := s.layouts.Save(ctx, id, m.EncodeTiles()); err != nil {
		s.logger.Printf("%s[ERROR]%s saving layout of maze %s: %s", config.LogErrorColor, config.LogColorReset, id, err)
		return uuid.Nil, nil, err
	}

	s.logger.Printf("%s[INFO]%s created %dx%d maze %s", config.LogInfoColor, config.LogColorReset, m.Width(), m.Height(), id)
	return id, m, nil
}

// Get loads a stored maze.
func (s *MazeService) Get(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	return loadMaze(ctx, s.layouts, id)
}

// Toggle flips the wall state of one cell of a stored maze.
func (s *MazeService) Toggle(ctx context.Context, id uuid.UUID, row, column int) (*maze.Maze, error) {
	return s.edit(ctx, id, func(m *maze.Maze) error {
		if err := m.ToggleTile(row, column); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return nil
	})
}

// Resize changes the dimensions of a stored maze. Dimensions are clamped to [1, MaxEditableDimension].
func (s *MazeService) Resize(ctx context.Context, id uuid.UUID, width, height int) (*maze.Maze, error) {
	width = clamp(width, 1, MaxEditableDimension)
	height = clamp(height, 1, MaxEditableDimension)

	return s.edit(ctx, id, func(m *maze.Maze) error {
		return m.Resize(width, height)
	})
}

// edit applies fn to a stored maze under the maze lock and saves the result.
func (s *MazeService) edit(ctx context.Context, id uuid.UUID, fn func(*maze.Maze) error) (*maze.Maze, error) {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		if errors.Is(err, i.ErrLocked) {
			return nil, ErrMazeBusy
		}
		return nil, err
	}
	defer unlock()

	m, err := loadMaze(ctx, s.layouts, id)
	if err != nil {
		return nil, err
	}

	if err := fn(m); err != nil {
		return nil, err
	}

	if err := s.layouts.Save(ctx, id, m.EncodeTiles()); err != nil {
		s.logger.Printf("%s[ERROR]%s saving layout of maze %s: %s", config.LogErrorColor, config.LogColorReset, id, err)
		return nil, err
	}

	return m, nil
}

// BuildMaze produces the layout a spec asks for without storing it.
func BuildMaze(spec i.MazeSpec) (*maze.Maze, error) {
	switch {
	case spec.Encoded != "":
		m, err := maze.Decode(spec.Encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}
		return m, nil
	case spec.Width > 0 || spec.Height > 0:
		width := clamp(spec.Width, 1, MaxEditableDimension)
		height := clamp(spec.Height, 1, MaxEditableDimension)
		if !spec.Generate {
			return maze.New(maze.Empty(width, height))
		}

		seed := spec.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		tiles, err := maze.Generate(rand.New(rand.NewSource(seed)), width, height)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}
		return maze.New(tiles)
	default:
		return maze.New(maze.DefaultTiles())
	}
}

// loadMaze decodes the stored layout of a maze.
func loadMaze(ctx context.Context, layouts i.LayoutStore, id uuid.UUID) (*maze.Maze, error) {
	encoded, err := layouts.Load(ctx, id)
	if err != nil {
		if errors.Is(err, i.ErrNotFound) {
			return nil, ErrMazeNotFound
		}
		return nil, err
	}

	m, err := maze.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return m, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
