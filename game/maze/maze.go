/*
Package maze provides the grid environment a learning agent navigates.

A Maze is a rectangular grid of tiles with a fixed start cell (0,0) and a fixed
goal cell (height-1, width-1). It tracks the robot position and a step counter,
and keeps a precomputed table of legal moves per cell that is rebuilt whenever
the wall layout or the dimensions change.

The package also provides a compact binary codec for wall layouts, a random
layout generator based on Wilson's algorithm and ASCII visualization.
*/
package maze

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-rl/game"
)

const (
	// MaxDimension is the largest width or height the layout codec can carry.
	MaxDimension = 255
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrEmptyLayout       = errors.New("empty maze layout")
	ErrRaggedLayout      = errors.New("maze layout rows differ in length")
	ErrOutOfBounds       = errors.New("position is out of the maze")
)

var _ game.Environment = &Maze{}

// Maze is a rectangular grid with a robot moving from the top-left to the bottom-right cell.
// A Maze is not safe for concurrent use.
type Maze struct {
	width        int             // Number of columns
	height       int             // Number of rows
	tiles        [][]game.Tile   // height x width grid
	robot        game.State      // Current robot position
	steps        int             // Moves since the last reset
	allowedMoves [][]game.Action // Legal moves indexed by cell index
}

// New creates a maze from a rectangular tile grid. The grid is copied, the robot
// is placed on the start cell and the goal cell is cleared of walls.
func New(tiles [][]game.Tile) (*Maze, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyLayout
	}

	height, width := len(tiles), len(tiles[0])
	if height > MaxDimension || width > MaxDimension {
		return nil, ErrInvalidDimensions
	}

	grid := make([][]game.Tile, height)
	for x, row := range tiles {
		if len(row) != width {
			return nil, ErrRaggedLayout
		}
		grid[x] = make([]game.Tile, width)
		for y, tile := range row {
			// Robot markers from the input are stale; only walls carry over.
			if tile == game.TileWall {
				grid[x][y] = game.TileWall
			}
		}
	}

	m := &Maze{
		width:  width,
		height: height,
		tiles:  grid,
	}
	m.tiles[height-1][width-1] = game.TileEmpty
	m.tiles[0][0] = game.TileRobot
	m.robot = m.StateAt(0, 0)
	m.initAllowedMoves()

	return m, nil
}

// Empty returns a width x height grid with no walls.
func Empty(width, height int) [][]game.Tile {
	tiles := make([][]game.Tile, height)
	for i := range tiles {
		tiles[i] = make([]game.Tile, width)
	}
	return tiles
}

// Width returns the number of columns.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	return m.height
}

// Steps returns the number of moves made since the last reset.
func (m *Maze) Steps() int {
	return m.steps
}

// Tile returns the tile at the given cell.
func (m *Maze) Tile(x, y int) (game.Tile, error) {
	if !m.inBound(x, y) {
		return game.TileEmpty, ErrOutOfBounds
	}
	return m.tiles[x][y], nil
}

// Tiles returns a copy of the tile grid.
func (m *Maze) Tiles() [][]game.Tile {
	tiles := make([][]game.Tile, m.height)
	for x := range m.tiles {
		tiles[x] = append([]game.Tile(nil), m.tiles[x]...)
	}
	return tiles
}

// ToIndex flattens a coordinate into a cell index for the current width.
func (m *Maze) ToIndex(x, y int) int {
	return x*m.width + y
}

// FromIndex recovers the coordinate of a cell index for the current width.
func (m *Maze) FromIndex(index int) (int, int) {
	return index / m.width, index % m.width
}

// StateAt returns the state of the given coordinate. The coordinate is not bounds checked.
func (m *Maze) StateAt(x, y int) game.State {
	return game.State{X: x, Y: y, Index: m.ToIndex(x, y)}
}

// State returns the robot's current state.
func (m *Maze) State() game.State {
	return m.robot
}

// States returns every cell index of the maze.
func (m *Maze) States() []int {
	states := make([]int, m.width*m.height)
	for i := range states {
		states[i] = i
	}
	return states
}

// ApplyAction returns the neighbour of s in the direction of a. The maze is not mutated and
// the result may lie outside the grid.
func (m *Maze) ApplyAction(s game.State, a game.Action) game.State {
	delta := game.ActionSpace[a]
	return m.StateAt(s.X+delta.X, s.Y+delta.Y)
}

// IsAllowedMove reports whether applying a to s stays inside the grid and off walls.
func (m *Maze) IsAllowedMove(s game.State, a game.Action) bool {
	target := m.ApplyAction(s, a)
	if !m.inBound(target.X, target.Y) {
		return false
	}
	return m.tiles[target.X][target.Y] != game.TileWall
}

// AllowedMoves returns the precomputed legal moves of s. The returned slice must not be modified.
func (m *Maze) AllowedMoves(s game.State) []game.Action {
	if s.Index < 0 || s.Index >= len(m.allowedMoves) {
		return nil
	}
	return m.allowedMoves[s.Index]
}

// Update moves the robot by a, increments the step counter and marks the new cell.
// Legality is not checked; callers pick a from AllowedMoves.
func (m *Maze) Update(a game.Action) {
	m.tiles[m.robot.X][m.robot.Y] = game.TileEmpty
	m.robot = m.ApplyAction(m.robot, a)
	m.steps++
	m.tiles[m.robot.X][m.robot.Y] = game.TileRobot
}

// IsGameOver reports whether the robot stands on the goal cell.
func (m *Maze) IsGameOver() bool {
	return m.robot.X == m.height-1 && m.robot.Y == m.width-1
}

// Reward returns 0 on the goal cell and -1 everywhere else.
func (m *Maze) Reward() int {
	if m.IsGameOver() {
		return 0
	}
	return -1
}

// Reset moves the robot back to the start cell and zeroes the step counter.
// The wall layout is untouched.
func (m *Maze) Reset() {
	m.steps = 0
	m.tiles[m.robot.X][m.robot.Y] = game.TileEmpty
	m.tiles[0][0] = game.TileRobot
	m.robot = m.StateAt(0, 0)
}

// SetRobotPosition force-moves the robot marker to the given cell.
func (m *Maze) SetRobotPosition(x, y int) error {
	if !m.inBound(x, y) {
		return ErrOutOfBounds
	}
	m.tiles[m.robot.X][m.robot.Y] = game.TileEmpty
	m.robot = m.StateAt(x, y)
	m.tiles[x][y] = game.TileRobot
	return nil
}

// ToggleTile flips a cell between empty and wall and rebuilds the legal-move table.
// The start and goal cells cannot be toggled.
func (m *Maze) ToggleTile(row, column int) error {
	if !m.inBound(row, column) {
		return ErrOutOfBounds
	}
	if m.isStart(row, column) || m.isGoal(row, column) {
		return nil
	}

	if m.tiles[row][column] == game.TileWall {
		m.tiles[row][column] = game.TileEmpty
	} else {
		m.tiles[row][column] = game.TileWall
	}
	m.initAllowedMoves()
	return nil
}

// Resize resets the maze and grows or truncates it to the given dimensions.
// New cells are empty; truncated cells are discarded. Every previously computed
// cell index is invalid afterwards.
func (m *Maze) Resize(width, height int) error {
	if min(width, height) <= 0 || max(width, height) > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	m.Reset()

	tiles := make([][]game.Tile, height)
	for x := range tiles {
		tiles[x] = make([]game.Tile, width)
		if x < m.height {
			copy(tiles[x], m.tiles[x])
		}
	}
	m.tiles = tiles
	m.width = width
	m.height = height

	m.tiles[height-1][width-1] = game.TileEmpty
	m.tiles[0][0] = game.TileRobot
	m.robot = m.StateAt(0, 0)
	m.initAllowedMoves()
	return nil
}

// Solvable reports whether the goal cell can be reached from the start cell.
func (m *Maze) Solvable() bool {
	goal := m.ToIndex(m.height-1, m.width-1)
	visited := make([]bool, m.width*m.height)
	queue := []game.State{m.StateAt(0, 0)}
	visited[0] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Index == goal {
			return true
		}
		for _, a := range m.AllowedMoves(cur) {
			next := m.ApplyAction(cur, a)
			if !visited[next.Index] {
				visited[next.Index] = true
				queue = append(queue, next)
			}
		}
	}

	return false
}

// initAllowedMoves rescans the whole grid and rebuilds the legal-move table.
func (m *Maze) initAllowedMoves() {
	m.allowedMoves = make([][]game.Action, m.width*m.height)
	for x := 0; x < m.height; x++ {
		for y := 0; y < m.width; y++ {
			s := m.StateAt(x, y)
			moves := make([]game.Action, 0, len(game.AllActions))
			for _, a := range game.AllActions {
				if m.IsAllowedMove(s, a) {
					moves = append(moves, a)
				}
			}
			m.allowedMoves[s.Index] = moves
		}
	}
}

func (m *Maze) inBound(x, y int) bool {
	return x >= 0 && x < m.height && y >= 0 && y < m.width
}

func (m *Maze) isStart(x, y int) bool {
	return x == 0 && y == 0
}

func (m *Maze) isGoal(x, y int) bool {
	return x == m.height-1 && y == m.width-1
}
