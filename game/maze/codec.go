package maze

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-rl/game"
)

const layoutHeaderSize = 2 // width byte + height byte

var (
	ErrMalformedLayout = errors.New("malformed maze layout")
	ErrTruncatedLayout = errors.New("truncated maze layout")
)

// MarshalLayout packs the wall layout as [width][height][bitmap]. The bitmap holds one bit per
// cell in row-major order, most significant bit first, 1 for a wall, zero padded to a byte.
func (m *Maze) MarshalLayout() []byte {
	out := make([]byte, layoutHeaderSize, layoutHeaderSize+bitmapSize(m.width, m.height))
	out[0] = byte(m.width)
	out[1] = byte(m.height)

	bit := 0
	var current byte
	for x := 0; x < m.height; x++ {
		for y := 0; y < m.width; y++ {
			current <<= 1
			if m.tiles[x][y] == game.TileWall {
				current |= 1
			}
			if bit++; bit == 8 {
				out = append(out, current)
				bit = 0
				current = 0
			}
		}
	}

	if bit != 0 {
		out = append(out, current<<(8-bit))
	}

	return out
}

// UnmarshalLayout decodes a packed wall layout produced by MarshalLayout.
func UnmarshalLayout(b []byte) ([][]game.Tile, error) {
	if len(b) < layoutHeaderSize {
		return nil, ErrTruncatedLayout
	}

	width, height := int(b[0]), int(b[1])
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	bitmap := b[layoutHeaderSize:]
	want := bitmapSize(width, height)
	if len(bitmap) < want {
		return nil, fmt.Errorf("%w: want %d bitmap bytes, got %d", ErrTruncatedLayout, want, len(bitmap))
	}
	if len(bitmap) > want {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedLayout, len(bitmap)-want)
	}

	tiles := Empty(width, height)
	for x := 0; x < height; x++ {
		for y := 0; y < width; y++ {
			cell := x*width + y
			if bitmap[cell/8]&(0x80>>(cell%8)) != 0 {
				tiles[x][y] = game.TileWall
			}
		}
	}

	return tiles, nil
}

// EncodeTiles returns the packed wall layout as standard base64 text.
func (m *Maze) EncodeTiles() string {
	return base64.StdEncoding.EncodeToString(m.MarshalLayout())
}

// LoadTiles decodes a layout produced by EncodeTiles.
func LoadTiles(encoded string) ([][]game.Tile, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLayout, err)
	}
	return UnmarshalLayout(b)
}

// Decode builds a maze straight from an encoded layout. A wall on the start or goal cell
// is rejected, so the decoded maze always encodes back to the same text.
func Decode(encoded string) (*Maze, error) {
	tiles, err := LoadTiles(encoded)
	if err != nil {
		return nil, err
	}

	last := tiles[len(tiles)-1]
	if tiles[0][0] == game.TileWall || last[len(last)-1] == game.TileWall {
		return nil, fmt.Errorf("%w: wall on the start or goal cell", ErrMalformedLayout)
	}
	return New(tiles)
}

func bitmapSize(width, height int) int {
	return (width*height + 7) / 8
}
