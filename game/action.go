package game

import "fmt"

// Action is one of the four unit moves the robot can make.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// Delta is the coordinate change an action applies to a cell.
type Delta struct {
	X int // Row change
	Y int // Column change
}

var (
	// AllActions lists every action in the order legal moves are reported.
	AllActions = []Action{Up, Down, Left, Right}

	// ActionSpace maps every action to its unit coordinate delta.
	ActionSpace = map[Action]Delta{
		Up:    {X: -1, Y: 0},
		Down:  {X: 1, Y: 0},
		Left:  {X: 0, Y: -1},
		Right: {X: 0, Y: 1},
	}
)

// String returns the direction name of the action.
func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}
