package game

// Tile is the content of a single maze cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall
	TileRobot
)

// State is an immutable cell coordinate together with its flattened index.
// The index is only meaningful for the maze width it was computed with.
type State struct {
	X     int // Row of the cell
	Y     int // Column of the cell
	Index int // X*width + Y
}

// StateApplier computes neighbour states without mutating the environment.
type StateApplier interface {
	ApplyAction(s State, a Action) State
}

// Environment defines the step interface a training driver consumes.
type Environment interface {
	StateApplier

	// State returns the robot's current state.
	State() State

	// AllowedMoves returns the precomputed legal moves for a state.
	AllowedMoves(s State) []Action

	// Update moves the robot by the given action. The action must be legal.
	Update(a Action)

	// Reward returns 0 once the goal is reached and -1 otherwise.
	Reward() int

	// IsGameOver reports whether the robot stands on the goal cell.
	IsGameOver() bool

	// Reset puts the robot back on the start cell and clears the step counter.
	Reset()

	// SetRobotPosition force-moves the robot marker.
	SetRobotPosition(x, y int) error

	// Steps returns the number of moves made since the last reset.
	Steps() int

	// States returns every valid cell index for the current dimensions.
	States() []int

	// Solvable reports whether the goal is reachable from the start cell.
	Solvable() bool

	Width() int
	Height() int
}
