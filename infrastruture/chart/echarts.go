// Package chart renders training curves as standalone HTML pages.
package chart

import (
	"io"
	"strconv"

	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
)

const defaultSmoothingWindow = 50

var _ i.ChartRenderer = &EChartsRenderer{}

// EChartsRenderer draws move histories with go-echarts.
type EChartsRenderer struct {
	window int // Episodes averaged by the smoothed series
}

// NewEChartsRenderer creates a renderer. A non-positive window uses the default.
func NewEChartsRenderer(window int) *EChartsRenderer {
	if window <= 0 {
		window = defaultSmoothingWindow
	}
	return &EChartsRenderer{window: window}
}

// RenderMoveHistory writes an HTML page charting the step count of every episode
// together with its trailing moving average.
func (r *EChartsRenderer) RenderMoveHistory(w io.Writer, title string, moves []int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Episodes",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "StepCount",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type: "slider",
		}),
	)

	episodes := make([]string, len(moves))
	raw := make([]opts.LineData, len(moves))
	for idx, m := range moves {
		episodes[idx] = strconv.Itoa(idx)
		raw[idx] = opts.LineData{Value: m}
	}

	smoothed := make([]opts.LineData, len(moves))
	for idx, avg := range movingAverage(moves, r.window) {
		smoothed[idx] = opts.LineData{Value: avg}
	}

	line.SetXAxis(episodes).
		AddSeries("Moves", raw).
		AddSeries("Moving average", smoothed)

	return line.Render(w)
}

// movingAverage returns the mean of the trailing window ending at every position.
func movingAverage(moves []int, window int) []float64 {
	xs := make([]float64, len(moves))
	for idx, m := range moves {
		xs[idx] = float64(m)
	}

	out := make([]float64, len(xs))
	for idx := range xs {
		start := max(0, idx-window+1)
		out[idx] = stat.Mean(xs[start:idx+1], nil)
	}
	return out
}
