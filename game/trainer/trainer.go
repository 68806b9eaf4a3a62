// Package trainer runs learning episodes of an agent inside a maze environment.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-rl/config"
	"github.com/beka-birhanu/vinom-rl/game"
	"github.com/beka-birhanu/vinom-rl/game/agent"
)

const (
	DefaultEpisodes = 5000
	DefaultStepCap  = 1000

	defaultLogEvery = 500
)

var (
	ErrInvalidConfig = errors.New("invalid trainer config")
)

// Config holds the parameters of a training run.
type Config struct {
	Episodes     int                      // Number of episodes to run
	StepCap      int                      // Episodes longer than this are ended by teleporting to the goal
	Alpha        float64                  // Learning rate of the agent
	RandomFactor float64                  // Initial exploration rate of the agent
	Seed         int64                    // Seed of the random source, 0 picks one from the clock
	Floor        *float64                 // Optional lower bound of the exploration rate
	LogEvery     int                      // Log progress every LogEvery episodes
	Logger       *log.Logger              // Logger for progress, discarded when nil
	OnEpisode    func(episode, steps int) // Called after every episode
}

// Result is the outcome of a training run.
type Result struct {
	Seed         int64           // Seed the run used
	Width        int             // Maze width the value indices belong to
	Height       int             // Maze height the value indices belong to
	Solvable     bool            // Whether the goal was reachable
	MoveHistory  []int           // Steps taken in every episode
	Values       map[int]float64 // Learned value table
	RandomFactor float64         // Exploration rate after the last episode
}

// Trainer drives episodes of a fresh agent through an environment.
type Trainer struct {
	cfg Config
}

// New validates the config and fills in defaults for zero values. A zero RandomFactor is
// kept as is and means the agent never explores.
func New(c Config) (*Trainer, error) {
	if c.Episodes < 0 || c.StepCap < 0 || c.LogEvery < 0 {
		return nil, ErrInvalidConfig
	}
	if c.Episodes == 0 {
		c.Episodes = DefaultEpisodes
	}
	if c.Alpha == 0 {
		c.Alpha = agent.DefaultAlpha
	}
	if c.StepCap == 0 {
		c.StepCap = DefaultStepCap
	}
	if c.LogEvery == 0 {
		c.LogEvery = defaultLogEvery
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	return &Trainer{cfg: c}, nil
}

// Train builds an agent over every state of env and runs the configured episodes. The agent
// is created per run, so indices from a previous layout never leak into a resized maze.
// Cancellation is honoured between episodes.
func (t *Trainer) Train(ctx context.Context, env game.Environment) (*Result, error) {
	opts := []agent.Option{agent.WithRand(rand.New(rand.NewSource(t.cfg.Seed)))}
	if t.cfg.Floor != nil {
		opts = append(opts, agent.WithExplorationFloor(*t.cfg.Floor))
	}

	robot, err := agent.New(env.States(), t.cfg.Alpha, t.cfg.RandomFactor, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	solvable := env.Solvable()
	if !solvable {
		t.cfg.Logger.Printf("%s[WARN]%s goal of %dx%d maze is unreachable, every episode will hit the step cap", config.LogWarnColor, config.LogColorReset, env.Width(), env.Height())
	}

	moveHistory := make([]int, 0, t.cfg.Episodes)
	env.Reset()
	for episode := 0; episode < t.cfg.Episodes; episode++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := t.runEpisode(env, robot); err != nil {
			return nil, fmt.Errorf("episode %d: %w", episode, err)
		}

		robot.Learn()
		steps := env.Steps()
		moveHistory = append(moveHistory, steps)
		env.Reset()

		if t.cfg.OnEpisode != nil {
			t.cfg.OnEpisode(episode, steps)
		}
		if (episode+1)%t.cfg.LogEvery == 0 {
			t.cfg.Logger.Printf("%s[INFO]%s episode %d/%d took %d steps, exploration rate %.4f", config.LogInfoColor, config.LogColorReset, episode+1, t.cfg.Episodes, steps, robot.RandomFactor())
		}
	}

	return &Result{
		Seed:         t.cfg.Seed,
		Width:        env.Width(),
		Height:       env.Height(),
		Solvable:     solvable,
		MoveHistory:  moveHistory,
		Values:       robot.Values(),
		RandomFactor: robot.RandomFactor(),
	}, nil
}

// runEpisode plays until the goal is reached, teleporting the robot there once the step cap
// is exceeded.
func (t *Trainer) runEpisode(env game.Environment, robot *agent.Agent) error {
	for !env.IsGameOver() {
		state := env.State()
		action, err := robot.ChooseAction(env, state, env.AllowedMoves(state))
		if err != nil {
			return fmt.Errorf("choosing action at (%d,%d): %w", state.X, state.Y, err)
		}

		env.Update(action)
		robot.UpdateStateHistory(env.State(), env.Reward())

		if env.Steps() > t.cfg.StepCap {
			if err := env.SetRobotPosition(env.Height()-1, env.Width()-1); err != nil {
				return err
			}
		}
	}
	return nil
}
