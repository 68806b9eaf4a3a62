package service

import (
	"context"
	"testing"

	"github.com/beka-birhanu/vinom-rl/game"
	"github.com/beka-birhanu/vinom-rl/game/maze"
	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMazeService(t *testing.T) (*MazeService, *memLayouts, *memLocker) {
	t.Helper()
	layouts := newMemLayouts()
	locker := newMemLocker()
	svc, err := NewMazeService(&MazeServiceConfig{
		Layouts: layouts,
		Locker:  locker,
		Logger:  discardLogger(),
	})
	require.NoError(t, err)
	return svc, layouts, locker
}

func TestNewMazeService(t *testing.T) {
	_, err := NewMazeService(&MazeServiceConfig{Layouts: newMemLayouts()})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestMazeServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Default layout", func(t *testing.T) {
		svc, layouts, _ := newTestMazeService(t)

		id, m, err := svc.Create(ctx, i.MazeSpec{})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, 6, m.Width())
		assert.Equal(t, 6, m.Height())

		stored, err := layouts.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, m.EncodeTiles(), stored)
	})

	t.Run("Empty grid of a given size", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)

		_, m, err := svc.Create(ctx, i.MazeSpec{Width: 4, Height: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, m.Width())
		assert.Equal(t, 2, m.Height())
		assert.Equal(t, maze.Empty(4, 2)[1], m.Tiles()[1])
	})

	t.Run("Sizes are clamped", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)

		_, m, err := svc.Create(ctx, i.MazeSpec{Width: 500, Height: -3})
		require.NoError(t, err)
		assert.Equal(t, MaxEditableDimension, m.Width())
		assert.Equal(t, 1, m.Height())
	})

	t.Run("Generated layout is seeded", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)

		spec := i.MazeSpec{Width: 9, Height: 7, Generate: true, Seed: 17}
		_, a, err := svc.Create(ctx, spec)
		require.NoError(t, err)
		_, b, err := svc.Create(ctx, spec)
		require.NoError(t, err)

		assert.Equal(t, a.EncodeTiles(), b.EncodeTiles())
		assert.True(t, a.Solvable())
	})

	t.Run("Encoded layout", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)

		_, m, err := svc.Create(ctx, i.MazeSpec{Encoded: "AgJA", Width: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, m.Width())
		tile, err := m.Tile(0, 1)
		require.NoError(t, err)
		assert.Equal(t, game.TileWall, tile)
	})

	t.Run("Invalid encoded layout", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)

		_, _, err := svc.Create(ctx, i.MazeSpec{Encoded: "AgI="})
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("Storage failure", func(t *testing.T) {
		svc, layouts, _ := newTestMazeService(t)
		layouts.saveErr = errStorageDown

		_, _, err := svc.Create(ctx, i.MazeSpec{})
		assert.ErrorIs(t, err, errStorageDown)
	})
}

func TestMazeServiceEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("Get unknown maze", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)

		_, err := svc.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrMazeNotFound)
	})

	t.Run("Toggle persists the layout", func(t *testing.T) {
		svc, _, locker := newTestMazeService(t)
		id, _, err := svc.Create(ctx, i.MazeSpec{Width: 3, Height: 3})
		require.NoError(t, err)

		m, err := svc.Toggle(ctx, id, 1, 1)
		require.NoError(t, err)
		tile, _ := m.Tile(1, 1)
		assert.Equal(t, game.TileWall, tile)

		stored, err := svc.Get(ctx, id)
		require.NoError(t, err)
		tile, _ = stored.Tile(1, 1)
		assert.Equal(t, game.TileWall, tile)
		assert.False(t, locker.isHeld(id))
	})

	t.Run("Toggle out of bounds", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)
		id, _, err := svc.Create(ctx, i.MazeSpec{Width: 3, Height: 3})
		require.NoError(t, err)

		_, err = svc.Toggle(ctx, id, 5, 0)
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})

	t.Run("Edits are refused while the maze is locked", func(t *testing.T) {
		svc, _, locker := newTestMazeService(t)
		id, _, err := svc.Create(ctx, i.MazeSpec{})
		require.NoError(t, err)

		unlock, err := locker.Lock(ctx, id)
		require.NoError(t, err)

		_, err = svc.Toggle(ctx, id, 1, 1)
		assert.ErrorIs(t, err, ErrMazeBusy)
		_, err = svc.Resize(ctx, id, 3, 3)
		assert.ErrorIs(t, err, ErrMazeBusy)

		unlock()
		_, err = svc.Resize(ctx, id, 3, 3)
		assert.NoError(t, err)
	})

	t.Run("Resize clamps and persists", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)
		id, _, err := svc.Create(ctx, i.MazeSpec{})
		require.NoError(t, err)

		m, err := svc.Resize(ctx, id, 0, 1000)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Width())
		assert.Equal(t, MaxEditableDimension, m.Height())

		stored, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Width())
		assert.Equal(t, MaxEditableDimension, stored.Height())
	})

	t.Run("Edit of unknown maze", func(t *testing.T) {
		svc, _, _ := newTestMazeService(t)

		_, err := svc.Toggle(ctx, uuid.New(), 1, 1)
		assert.ErrorIs(t, err, ErrMazeNotFound)
	})
}
