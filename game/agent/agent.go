// Package agent implements a tabular value learner that walks a maze with an
// epsilon-greedy policy and learns from whole episodes with a backward pass.
package agent

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-rl/game"
)

const (
	// DefaultAlpha is the learning rate used when a trainer sets none.
	DefaultAlpha = 0.15
	// DefaultRandomFactor is the initial exploration rate used when a trainer sets none.
	DefaultRandomFactor = 0.2
	// DefaultDecay is subtracted from the exploration rate after every episode.
	DefaultDecay = 1e-4

	initValueMin = -1.0
	initValueMax = -0.1
)

var (
	ErrNoAllowedMoves      = errors.New("no allowed moves")
	ErrInvalidAlpha        = errors.New("alpha must be in (0, 1]")
	ErrInvalidRandomFactor = errors.New("random factor must be in [0, 1]")
	ErrUnknownStateIndex   = errors.New("state index is not in the value table")
)

// Option configures an Agent.
type Option func(*Agent)

// WithRand sets the random source used for initialization and exploration.
func WithRand(r *rand.Rand) Option {
	return func(a *Agent) {
		a.rnd = r
	}
}

// WithDecay sets the amount the exploration rate drops after every Learn call.
func WithDecay(step float64) Option {
	return func(a *Agent) {
		a.decay = step
	}
}

// WithExplorationFloor clamps the decaying exploration rate at floor. Without it the rate
// keeps decreasing below zero, which behaves like zero.
func WithExplorationFloor(floor float64) Option {
	return func(a *Agent) {
		a.floor = floor
	}
}

// step is one entry of the episode history.
type step struct {
	state  int
	reward float64
}

// Agent keeps one value estimate per cell index and learns from complete episodes.
// An Agent is not safe for concurrent use.
type Agent struct {
	g            map[int]float64 // Value table keyed by cell index
	history      []step          // Current episode; the first one starts with the (0, 0) anchor
	alpha        float64         // Learning rate
	randomFactor float64         // Exploration rate
	decay        float64         // Exploration decay per episode
	floor        float64         // Lower bound of the exploration rate, -Inf when unclamped
	rnd          *rand.Rand
}

// New creates an agent with one value entry per state, each drawn from [-1.0, -0.1).
func New(states []int, alpha, randomFactor float64, opts ...Option) (*Agent, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, ErrInvalidAlpha
	}
	if randomFactor < 0 || randomFactor > 1 {
		return nil, ErrInvalidRandomFactor
	}

	a := &Agent{
		g:            make(map[int]float64, len(states)),
		alpha:        alpha,
		randomFactor: randomFactor,
		decay:        DefaultDecay,
		floor:        math.Inf(-1),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rnd == nil {
		a.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a.history = []step{{state: 0, reward: 0}}
	for _, s := range states {
		a.g[s] = a.randomValue(initValueMin, initValueMax)
	}

	return a, nil
}

// ChooseAction picks a random allowed move with probability equal to the exploration rate.
// Otherwise it picks the move whose resulting state has the greatest value; the first such
// move wins ties.
func (a *Agent) ChooseAction(env game.StateApplier, s game.State, allowedMoves []game.Action) (game.Action, error) {
	if len(allowedMoves) == 0 {
		return 0, ErrNoAllowedMoves
	}

	if a.rnd.Float64() < a.randomFactor {
		return allowedMoves[a.rnd.Intn(len(allowedMoves))], nil
	}

	best := 0
	bestValue := math.Inf(-1)
	for i, move := range allowedMoves {
		next := env.ApplyAction(s, move)
		value, ok := a.g[next.Index]
		if !ok {
			return 0, ErrUnknownStateIndex
		}
		if i == 0 || value > bestValue {
			best, bestValue = i, value
		}
	}

	return allowedMoves[best], nil
}

// UpdateStateHistory records the state reached by a step and the reward for reaching it.
func (a *Agent) UpdateStateHistory(s game.State, reward int) {
	a.history = append(a.history, step{state: s.Index, reward: float64(reward)})
}

// Learn walks the episode history from the newest entry to the oldest, moving every visited
// state's value toward the sum of the rewards that followed it. Afterwards the history is
// cleared and the exploration rate decays.
func (a *Agent) Learn() {
	target := 0.0

	for i := len(a.history) - 1; i >= 0; i-- {
		h := a.history[i]
		previous := a.g[h.state]
		a.g[h.state] = previous + a.alpha*(target-previous)
		target += h.reward
	}

	a.history = a.history[:0]
	a.randomFactor = max(a.randomFactor-a.decay, a.floor)
}

// Values returns a copy of the value table.
func (a *Agent) Values() map[int]float64 {
	values := make(map[int]float64, len(a.g))
	for k, v := range a.g {
		values[k] = v
	}
	return values
}

// Value returns the value estimate of a state index.
func (a *Agent) Value(index int) (float64, bool) {
	v, ok := a.g[index]
	return v, ok
}

// RandomFactor returns the current exploration rate.
func (a *Agent) RandomFactor() float64 {
	return a.randomFactor
}

// Alpha returns the learning rate.
func (a *Agent) Alpha() float64 {
	return a.alpha
}

// HistoryLen returns the number of recorded history entries.
func (a *Agent) HistoryLen() int {
	return len(a.history)
}

func (a *Agent) randomValue(lo, hi float64) float64 {
	return a.rnd.Float64()*(hi-lo) + lo
}
