// Package gameapi exposes maze editing and training over HTTP.
package gameapi

import (
	"time"

	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/beka-birhanu/vinom-rl/game"
	"github.com/beka-birhanu/vinom-rl/game/maze"
	"github.com/google/uuid"
)

// CreateMazeRequest describes a new maze. Encoded wins over Width/Height; with neither
// the default layout is used.
type CreateMazeRequest struct {
	Encoded  string `json:"encoded"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Generate bool   `json:"generate"`
	Seed     int64  `json:"seed"`
}

// ToggleRequest names the cell to flip.
type ToggleRequest struct {
	Row    *int `json:"row" binding:"required"`
	Column *int `json:"column" binding:"required"`
}

// ResizeRequest carries new maze dimensions.
type ResizeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// TrainRequest carries training parameters. Zero values fall back to the server defaults.
type TrainRequest struct {
	Episodes int     `json:"episodes"`
	StepCap  int     `json:"step_cap"`
	Alpha    float64 `json:"alpha"`
	Epsilon  float64 `json:"epsilon"`
	Seed     int64   `json:"seed"`
}

// MazeResponse describes a stored maze.
type MazeResponse struct {
	ID       uuid.UUID `json:"id"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Encoded  string    `json:"encoded"`
	Walls    [][]bool  `json:"walls"`
	Solvable bool      `json:"solvable"`
}

// RunResponse describes a finished training run.
type RunResponse struct {
	ID          uuid.UUID        `json:"id"`
	MazeID      uuid.UUID        `json:"maze_id"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Solvable    bool             `json:"solvable"`
	Params      domain.RunParams `json:"params"`
	Episodes    int              `json:"episodes"`
	FinalMoves  int              `json:"final_moves"`
	MeanMoves   float64          `json:"mean_moves"`
	StdDevMoves float64          `json:"stddev_moves"`
	FinalRate   float64          `json:"final_epsilon"`
	MoveHistory []int            `json:"move_history,omitempty"`
	Values      [][]float64      `json:"values,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func newMazeResponse(id uuid.UUID, m *maze.Maze) *MazeResponse {
	tiles := m.Tiles()
	walls := make([][]bool, len(tiles))
	for x, row := range tiles {
		walls[x] = make([]bool, len(row))
		for y, tile := range row {
			walls[x][y] = tile == game.TileWall
		}
	}

	return &MazeResponse{
		ID:       id,
		Width:    m.Width(),
		Height:   m.Height(),
		Encoded:  m.EncodeTiles(),
		Walls:    walls,
		Solvable: m.Solvable(),
	}
}

// newRunResponse builds the response of a run. The move history and the value grid are
// only included when detailed is set.
func newRunResponse(run *domain.Run, detailed bool) (*RunResponse, error) {
	resp := &RunResponse{
		ID:          run.ID,
		MazeID:      run.MazeID,
		Width:       run.Width,
		Height:      run.Height,
		Solvable:    run.Solvable,
		Params:      run.Params,
		Episodes:    len(run.MoveHistory),
		FinalMoves:  run.FinalMoves(),
		MeanMoves:   run.MeanMoves,
		StdDevMoves: run.StdDevMoves,
		FinalRate:   run.RandomFactor,
		CreatedAt:   run.CreatedAt,
	}
	if !detailed {
		return resp, nil
	}

	m, err := maze.Decode(run.Layout)
	if err != nil {
		return nil, err
	}
	resp.MoveHistory = run.MoveHistory
	resp.Values = m.ValueGrid(run.ValueTable())
	return resp, nil
}
