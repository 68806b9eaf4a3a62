package maze

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-rl/game"
)

// cellPosition is a position in the coarse cell grid the generator carves.
type cellPosition struct {
	row int
	col int
}

// passage is a carved connection between two adjacent cells.
type passage struct {
	from cellPosition
	to   cellPosition
}

// carver holds the cell grid Wilson's algorithm works on. Every cell maps to the
// tile (2*row, 2*col) and every open passage to the tile between its two cells.
type carver struct {
	rows   int
	cols   int
	rnd    *rand.Rand
	opened map[passage]struct{}
}

// Generate returns a random width x height layout whose open cells form a spanning tree,
// so the goal is always reachable from the start.
func Generate(r *rand.Rand, width, height int) ([][]game.Tile, error) {
	if min(width, height) <= 0 || max(width, height) > MaxDimension {
		return nil, ErrInvalidDimensions
	}

	c := &carver{
		rows:   (height + 1) / 2,
		cols:   (width + 1) / 2,
		rnd:    r,
		opened: make(map[passage]struct{}),
	}
	c.generate()

	tiles := Empty(width, height)
	for x := 0; x < 2*c.rows-1; x++ {
		for y := 0; y < 2*c.cols-1; y++ {
			tiles[x][y] = game.TileWall
		}
	}
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			tiles[2*row][2*col] = game.TileEmpty
		}
	}
	for p := range c.opened {
		tiles[p.from.row+p.to.row][p.from.col+p.to.col] = game.TileEmpty
	}

	// Even dimensions leave a spare empty row or column along the bottom and right edges,
	// which is adjacent to the last carved cell and keeps the goal reachable.
	return tiles, nil
}

// randomCellPosition picks a uniformly random cell.
func (c *carver) randomCellPosition() cellPosition {
	return cellPosition{row: c.rnd.Intn(c.rows), col: c.rnd.Intn(c.cols)}
}

// randomUnvisitedCellPosition picks a random cell that is not yet part of the tree.
func (c *carver) randomUnvisitedCellPosition(visited map[cellPosition]struct{}) cellPosition {
	for {
		pos := c.randomCellPosition()
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// neighbors lists the in-bound cells adjacent to pos in a fixed order.
func (c *carver) neighbors(pos cellPosition) []cellPosition {
	var result []cellPosition
	for _, a := range game.AllActions {
		delta := game.ActionSpace[a]
		n := cellPosition{row: pos.row + delta.X, col: pos.col + delta.Y}
		if n.row >= 0 && n.row < c.rows && n.col >= 0 && n.col < c.cols {
			result = append(result, n)
		}
	}
	return result
}

// randomWalk walks from a random unvisited cell until it hits the tree, remembering the
// last exit taken from every cell. It returns the start of the walk and those exits;
// following them from the start yields the walk with its loops erased.
func (c *carver) randomWalk(visited map[cellPosition]struct{}) (cellPosition, map[cellPosition]cellPosition) {
	start := c.randomUnvisitedCellPosition(visited)
	exits := make(map[cellPosition]cellPosition)

	cell := start
	for {
		neighbors := c.neighbors(cell)
		next := neighbors[c.rnd.Intn(len(neighbors))]
		exits[cell] = next
		if _, included := visited[next]; included {
			break
		}
		cell = next
	}

	return start, exits
}

// generate carves a uniform spanning tree over the cell grid with Wilson's algorithm.
func (c *carver) generate() {
	visited := make(map[cellPosition]struct{})
	visited[c.randomCellPosition()] = struct{}{}

	for len(visited) < c.rows*c.cols {
		cell, exits := c.randomWalk(visited)
		for {
			if _, included := visited[cell]; included {
				break
			}
			next := exits[cell]
			c.opened[passage{from: cell, to: next}] = struct{}{}
			visited[cell] = struct{}{}
			cell = next
		}
	}
}
