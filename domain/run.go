// Package domain holds the records the service persists.
package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// summaryWindow is the number of trailing episodes summarised in a run.
const summaryWindow = 100

// RunParams are the parameters a training run was started with.
type RunParams struct {
	Episodes     int     `bson:"episodes" json:"episodes"`
	StepCap      int     `bson:"stepCap" json:"step_cap"`
	Alpha        float64 `bson:"alpha" json:"alpha"`
	RandomFactor float64 `bson:"randomFactor" json:"epsilon"`
	Seed         int64   `bson:"seed" json:"seed"`
}

// Run is a finished training run of an agent on one maze layout.
type Run struct {
	ID           uuid.UUID          `bson:"_id" json:"id"`
	MazeID       uuid.UUID          `bson:"mazeId" json:"maze_id"`
	Layout       string             `bson:"layout" json:"layout"` // Encoded layout the run trained on
	Width        int                `bson:"width" json:"width"`
	Height       int                `bson:"height" json:"height"`
	Solvable     bool               `bson:"solvable" json:"solvable"`
	Params       RunParams          `bson:"params" json:"params"`
	MoveHistory  []int              `bson:"moveHistory" json:"move_history"`
	Values       map[string]float64 `bson:"values" json:"-"` // Keys are decimal cell indices
	RandomFactor float64            `bson:"randomFactor" json:"final_epsilon"`
	MeanMoves    float64            `bson:"meanMoves" json:"mean_moves"`
	StdDevMoves  float64            `bson:"stdDevMoves" json:"stddev_moves"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
}

// RunConfig holds the training output a Run is built from.
type RunConfig struct {
	MazeID       uuid.UUID
	Layout       string
	Width        int
	Height       int
	Solvable     bool
	Params       RunParams
	MoveHistory  []int
	Values       map[int]float64
	RandomFactor float64
}

// NewRun creates a Run and summarises the trailing episodes of its move history.
func NewRun(c RunConfig) *Run {
	values := make(map[string]float64, len(c.Values))
	for k, v := range c.Values {
		values[strconv.Itoa(k)] = v
	}

	mean, std := summarize(c.MoveHistory)
	return &Run{
		ID:           uuid.New(),
		MazeID:       c.MazeID,
		Layout:       c.Layout,
		Width:        c.Width,
		Height:       c.Height,
		Solvable:     c.Solvable,
		Params:       c.Params,
		MoveHistory:  c.MoveHistory,
		Values:       values,
		RandomFactor: c.RandomFactor,
		MeanMoves:    mean,
		StdDevMoves:  std,
		CreatedAt:    time.Now().UTC(),
	}
}

// ValueTable returns the value table keyed by cell index.
func (r *Run) ValueTable() map[int]float64 {
	table := make(map[int]float64, len(r.Values))
	for k, v := range r.Values {
		index, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		table[index] = v
	}
	return table
}

// FinalMoves returns the step count of the last episode, or -1 for an empty run.
func (r *Run) FinalMoves() int {
	if len(r.MoveHistory) == 0 {
		return -1
	}
	return r.MoveHistory[len(r.MoveHistory)-1]
}

// summarize returns the mean and standard deviation of the last summaryWindow entries.
func summarize(history []int) (float64, float64) {
	if len(history) == 0 {
		return 0, 0
	}
	window := history[max(0, len(history)-summaryWindow):]
	xs := make([]float64, len(window))
	for i, v := range window {
		xs[i] = float64(v)
	}
	if len(xs) == 1 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
