// Package charts renders dashboard charts server side.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 420
)

var (
	ErrNoValues = errors.New("no values to plot")

	fatigueColor = drawing.ColorFromHex("2e86de")
	trendColor   = drawing.ColorFromHex("e74c3c")
)

// FatigueChart is the per-exercise fatigue of one muscle plus its trend line.
type FatigueChart struct {
	Title  string
	Muscle string
	Values []float64
	// Trend may be nil when no trend could be fitted.
	Trend  []float64
	Width  int
	Height int
}

// RenderPNG draws the fatigue values as a solid line with dots and the trend as a dotted line.
func (fc FatigueChart) RenderPNG() ([]byte, error) {
	if len(fc.Values) == 0 {
		return nil, ErrNoValues
	}
	if fc.Trend != nil && len(fc.Trend) != len(fc.Values) {
		return nil, fmt.Errorf("trend has %d points, values %d", len(fc.Trend), len(fc.Values))
	}

	xs := make([]float64, len(fc.Values))
	for i := range xs {
		xs[i] = float64(i + 1)
	}

	name := "fatigue"
	if fc.Muscle != "" {
		name = fc.Muscle
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    name,
			XValues: padX(xs),
			YValues: padY(fc.Values),
			Style: chart.Style{
				StrokeColor: fatigueColor,
				StrokeWidth: 2,
				DotColor:    fatigueColor,
				DotWidth:    4,
			},
		},
	}
	if fc.Trend != nil {
		series = append(series, chart.ContinuousSeries{
			Name:    "trend",
			XValues: padX(xs),
			YValues: padY(fc.Trend),
			Style: chart.Style{
				StrokeColor:     trendColor,
				StrokeWidth:     2,
				StrokeDashArray: []float64{4, 4},
			},
		})
	}

	width, height := fc.Width, fc.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	ch := chart.Chart{
		Title:      fc.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "exercise"},
		YAxis:      chart.YAxis{Name: "fatigue"},
		Series:     series,
	}
	if r := flatRange(fc.Values, fc.Trend); r != nil {
		ch.YAxis.Range = r
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render fatigue chart: %w", err)
	}
	return buf.Bytes(), nil
}

// flatRange returns an explicit y range when all values are equal,
// go-chart refuses to render a zero y-range delta.
func flatRange(series ...[]float64) *chart.ContinuousRange {
	first := true
	var lo, hi float64
	for _, ys := range series {
		for _, y := range ys {
			if first {
				lo, hi, first = y, y, false
				continue
			}
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
	}
	if hi-lo > 1e-12 {
		return nil
	}
	pad := math.Max(math.Abs(lo)*0.1, 0.1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// go-chart needs at least two points per series
func padX(xs []float64) []float64 {
	if len(xs) == 1 {
		return []float64{xs[0], xs[0] + 1}
	}
	return xs
}

func padY(ys []float64) []float64 {
	if len(ys) == 1 {
		return []float64{ys[0], ys[0]}
	}
	return ys
}
