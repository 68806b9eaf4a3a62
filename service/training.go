package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/beka-birhanu/vinom-rl/config"
	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/beka-birhanu/vinom-rl/game/trainer"
	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/google/uuid"
)

const (
	maxEpisodes       = 100000
	maxLeaderboardLen = 100
	defaultRunsLimit  = 20
)

var (
	ErrRunNotFound   = errors.New("run not found")
	ErrInvalidParams = errors.New("invalid training parameters")
)

var _ i.TrainingService = &TrainingService{}

// TrainingService trains agents on stored mazes, one run per maze at a time.
type TrainingService struct {
	layouts     i.LayoutStore
	locker      i.Locker
	runs        i.RunRepo
	leaderboard i.Leaderboard
	defaults    domain.RunParams
	logger      *log.Logger
}

// TrainingServiceConfig holds the dependencies and defaults of a TrainingService.
type TrainingServiceConfig struct {
	Layouts     i.LayoutStore
	Locker      i.Locker
	Runs        i.RunRepo
	Leaderboard i.Leaderboard
	Defaults    domain.RunParams // Used for zero-valued request parameters
	Logger      *log.Logger
}

// NewTrainingService creates a TrainingService.
func NewTrainingService(c *TrainingServiceConfig) (*TrainingService, error) {
	if c.Layouts == nil || c.Locker == nil || c.Runs == nil || c.Leaderboard == nil || c.Logger == nil {
		return nil, fmt.Errorf("%w: training service dependencies are missing", ErrInvalidRequest)
	}
	return &TrainingService{
		layouts:     c.Layouts,
		locker:      c.Locker,
		runs:        c.Runs,
		leaderboard: c.Leaderboard,
		defaults:    c.Defaults,
		logger:      c.Logger,
	}, nil
}

// Train runs a full training session on the stored layout of a maze and persists the result.
func (s *TrainingService) Train(ctx context.Context, mazeID uuid.UUID, params domain.RunParams) (*domain.Run, error) {
	params = s.withDefaults(params)
	if err := validateParams(params); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, mazeID)
	if err != nil {
		if errors.Is(err, i.ErrLocked) {
			return nil, ErrMazeBusy
		}
		return nil, err
	}
	defer unlock()

	m, err := loadMaze(ctx, s.layouts, mazeID)
	if err != nil {
		return nil, err
	}

	t, err := trainer.New(trainer.Config{
		Episodes:     params.Episodes,
		StepCap:      params.StepCap,
		Alpha:        params.Alpha,
		RandomFactor: params.RandomFactor,
		Seed:         params.Seed,
		Logger:       s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	s.logger.Printf("%s[INFO]%s training maze %s for %d episodes", config.LogInfoColor, config.LogColorReset, mazeID, params.Episodes)
	result, err := t.Train(ctx, m)
	if err != nil {
		s.logger.Printf("%s[ERROR]%s training maze %s: %s", config.LogErrorColor, config.LogColorReset, mazeID, err)
		return nil, err
	}
	params.Seed = result.Seed

	run := domain.NewRun(domain.RunConfig{
		MazeID:       mazeID,
		Layout:       m.EncodeTiles(),
		Width:        result.Width,
		Height:       result.Height,
		Solvable:     result.Solvable,
		Params:       params,
		MoveHistory:  result.MoveHistory,
		Values:       result.Values,
		RandomFactor: result.RandomFactor,
	})

	if err := s.runs.Save(run); err != nil {
		s.logger.Printf("%s[ERROR]%s saving run %s: %s", config.LogErrorColor, config.LogColorReset, run.ID, err)
		return nil, err
	}

	if run.Solvable {
		if err := s.leaderboard.Record(ctx, mazeID, run.ID, run.FinalMoves()); err != nil {
			s.logger.Printf("%s[ERROR]%s ranking run %s: %s", config.LogErrorColor, config.LogColorReset, run.ID, err)
		}
	}

	s.logger.Printf("%s[INFO]%s finished run %s, last episode took %d steps", config.LogInfoColor, config.LogColorReset, run.ID, run.FinalMoves())
	return run, nil
}

// Run retrieves a stored run.
func (s *TrainingService) Run(id uuid.UUID) (*domain.Run, error) {
	run, err := s.runs.ByID(id)
	if err != nil {
		if errors.Is(err, i.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

// Runs lists the most recent runs of a maze.
func (s *TrainingService) Runs(mazeID uuid.UUID, limit int64) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	return s.runs.ByMaze(mazeID, limit)
}

// Leaderboard returns up to n of the best runs of a maze.
func (s *TrainingService) Leaderboard(ctx context.Context, mazeID uuid.UUID, n int64) ([]i.LeaderboardEntry, error) {
	n = max(1, min(n, maxLeaderboardLen))
	return s.leaderboard.Best(ctx, mazeID, n)
}

func (s *TrainingService) withDefaults(p domain.RunParams) domain.RunParams {
	if p.Episodes == 0 {
		p.Episodes = s.defaults.Episodes
	}
	if p.StepCap == 0 {
		p.StepCap = s.defaults.StepCap
	}
	if p.Alpha == 0 {
		p.Alpha = s.defaults.Alpha
	}
	if p.RandomFactor == 0 {
		p.RandomFactor = s.defaults.RandomFactor
	}
	return p
}

func validateParams(p domain.RunParams) error {
	switch {
	case p.Episodes < 0 || p.Episodes > maxEpisodes:
		return fmt.Errorf("%w: episodes must be in [0, %d]", ErrInvalidParams, maxEpisodes)
	case p.StepCap < 0:
		return fmt.Errorf("%w: step cap must not be negative", ErrInvalidParams)
	case p.Alpha < 0 || p.Alpha > 1:
		return fmt.Errorf("%w: alpha must be in (0, 1]", ErrInvalidParams)
	case p.RandomFactor < 0 || p.RandomFactor > 1:
		return fmt.Errorf("%w: epsilon must be in [0, 1]", ErrInvalidParams)
	}
	return nil
}
