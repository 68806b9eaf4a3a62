package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMoveHistory(t *testing.T) {
	r := NewEChartsRenderer(2)

	var buf bytes.Buffer
	err := r.RenderMoveHistory(&buf, "Move History", []int{10, 6, 4, 4})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Move History")
	assert.Contains(t, html, "Moving average")
	assert.Contains(t, html, "StepCount")
}

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name   string
		moves  []int
		window int
		want   []float64
	}{
		{name: "empty", moves: nil, window: 3, want: []float64{}},
		{name: "window of one", moves: []int{3, 5}, window: 1, want: []float64{3, 5}},
		{name: "trailing window", moves: []int{2, 4, 6, 8}, window: 2, want: []float64{2, 3, 5, 7}},
		{name: "window larger than history", moves: []int{2, 4}, window: 10, want: []float64{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tt.want, movingAverage(tt.moves, tt.window), 1e-9)
		})
	}
}
