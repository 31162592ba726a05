package signal

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyInput     = errors.New("empty input")
	ErrLengthMismatch = errors.New("xs and ys differ in length")
	ErrZeroVariance   = errors.New("xs have zero variance")
	ErrNonFinite      = errors.New("non-finite value")
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// FitLine computes the ordinary least squares line over (xs[i], ys[i]).
func FitLine(xs, ys []float64) (Line, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return Line{}, ErrEmptyInput
	}
	if len(xs) != len(ys) {
		return Line{}, ErrLengthMismatch
	}
	if !allFinite(xs) || !allFinite(ys) {
		return Line{}, ErrNonFinite
	}
	if constant(xs) {
		return Line{}, ErrZeroVariance
	}

	// stat.LinearRegression returns (alpha, beta) for y = alpha + beta*x
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if !finite(slope) || !finite(intercept) {
		return Line{}, ErrNonFinite
	}

	return Line{
		Slope:     slope,
		Intercept: intercept,
	}, nil
}

// FitTrend fits the OLS line and returns it with its predictions for every x,
// in input order. Predictions that overflow to Inf are reported as ErrNonFinite.
func FitTrend(xs, ys []float64) (Line, []float64, error) {
	line, err := FitLine(xs, ys)
	if err != nil {
		return Line{}, nil, err
	}

	predicted := make([]float64, len(xs))
	for i, x := range xs {
		predicted[i] = line.At(x)
		if !finite(predicted[i]) {
			return Line{}, nil, ErrNonFinite
		}
	}
	return line, predicted, nil
}

// LinearTrend returns the fitted values of the OLS line for every x, in input order.
func LinearTrend(xs, ys []float64) ([]float64, error) {
	_, predicted, err := FitTrend(xs, ys)
	return predicted, err
}

// IndexTrend is LinearTrend with xs = 0..len(ys)-1.
func IndexTrend(ys []float64) ([]float64, error) {
	return LinearTrend(Indices(len(ys)), ys)
}

// Indices returns [0, 1, ..., n-1].
func Indices(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func allFinite(vals []float64) bool {
	for _, v := range vals {
		if !finite(v) {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
