package maze

import "github.com/beka-birhanu/vinom-rl/game"

const defaultDimension = 6

// DefaultTiles returns the 6x6 layout used when no layout is supplied.
func DefaultTiles() [][]game.Tile {
	tiles := Empty(defaultDimension, defaultDimension)

	walls := []struct {
		x int
		y int
	}{
		{5, 0}, {5, 1}, {5, 2}, {5, 3}, {5, 4},
		{0, 5}, {1, 5}, {2, 5}, {3, 5},
		{2, 2}, {2, 3}, {2, 4},
		{3, 2},
	}
	for _, w := range walls {
		tiles[w.x][w.y] = game.TileWall
	}

	return tiles
}
