package maze

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-rl/game"
	"github.com/logrusorgru/aurora"
)

// String provides a plain textual representation of the maze.
func (m *Maze) String() string {
	return m.Render(aurora.NewAurora(false))
}

// Render draws the maze with the given colouring. Walls are drawn as '#', the robot as 'R'
// and the goal as 'G'.
func (m *Maze) Render(au aurora.Aurora) string {
	var sb strings.Builder

	border := "+" + strings.Repeat("---", m.width) + "+\n"
	sb.WriteString(border)

	for x := 0; x < m.height; x++ {
		sb.WriteString("|")
		for y := 0; y < m.width; y++ {
			switch {
			case m.tiles[x][y] == game.TileWall:
				sb.WriteString(au.Gray(12, "###").String())
			case m.tiles[x][y] == game.TileRobot:
				sb.WriteString(au.Green(" R ").String())
			case m.isGoal(x, y):
				sb.WriteString(au.Blue(" G ").String())
			default:
				sb.WriteString("   ")
			}
		}
		sb.WriteString("|\n")
	}

	sb.WriteString(border)
	return sb.String()
}

// ValueGrid projects a value table keyed by cell index onto the grid.
// Cells missing from the table are reported as 0.
func (m *Maze) ValueGrid(values map[int]float64) [][]float64 {
	grid := make([][]float64, m.height)
	for x := range grid {
		grid[x] = make([]float64, m.width)
		for y := range grid[x] {
			grid[x][y] = values[m.ToIndex(x, y)]
		}
	}
	return grid
}

// RenderValues draws the value of every cell, walls included, with four decimals.
func (m *Maze) RenderValues(values map[int]float64) string {
	var sb strings.Builder
	for _, row := range m.ValueGrid(values) {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%8.4f", v)
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}
