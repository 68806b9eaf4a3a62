package maze

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-rl/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("Layouts are solvable", func(t *testing.T) {
		sizes := []struct{ width, height int }{
			{1, 1}, {2, 2}, {5, 5}, {6, 4}, {7, 5}, {10, 3}, {1, 9}, {16, 16},
		}
		for seed := int64(1); seed <= 5; seed++ {
			for _, size := range sizes {
				tiles, err := Generate(rand.New(rand.NewSource(seed)), size.width, size.height)
				require.NoError(t, err)
				require.Len(t, tiles, size.height)
				require.Len(t, tiles[0], size.width)

				assert.Equal(t, game.TileEmpty, tiles[0][0])
				assert.Equal(t, game.TileEmpty, tiles[size.height-1][size.width-1])

				m, err := New(tiles)
				require.NoError(t, err)
				assert.True(t, m.Solvable(), "seed %d size %dx%d", seed, size.width, size.height)
			}
		}
	})

	t.Run("Open cells form a tree", func(t *testing.T) {
		// 7x5 has 4x3 cells joined by 11 passages.
		tiles, err := Generate(rand.New(rand.NewSource(42)), 7, 5)
		require.NoError(t, err)

		open := 0
		for _, row := range tiles {
			for _, tile := range row {
				if tile == game.TileEmpty {
					open++
				}
			}
		}
		assert.Equal(t, 12+11, open)
	})

	t.Run("Trees are sampled uniformly", func(t *testing.T) {
		// 5x3 has 3x2 cells, whose grid graph has 15 spanning trees.
		const samples = 15000
		r := rand.New(rand.NewSource(7))
		counts := make(map[string]int)
		for n := 0; n < samples; n++ {
			tiles, err := Generate(r, 5, 3)
			require.NoError(t, err)
			counts[fmt.Sprint(tiles)]++
		}

		require.Len(t, counts, 15)
		for layout, count := range counts {
			assert.InDelta(t, samples/15, count, 200, layout)
		}
	})

	t.Run("Same seed gives same layout", func(t *testing.T) {
		a, err := Generate(rand.New(rand.NewSource(99)), 9, 9)
		require.NoError(t, err)
		b, err := Generate(rand.New(rand.NewSource(99)), 9, 9)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Rejects invalid dimensions", func(t *testing.T) {
		_, err := Generate(rand.New(rand.NewSource(1)), 0, 4)
		assert.ErrorIs(t, err, ErrInvalidDimensions)

		_, err = Generate(rand.New(rand.NewSource(1)), 4, MaxDimension+1)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})
}
