package timeseries

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// ErrInvalidArgument is returned when a transform receives a window size or
// input value it cannot work with.
var ErrInvalidArgument = errors.New("invalid argument")

// Number is any integer or floating-point type a series can be built from.
type Number interface {
	constraints.Integer | constraints.Float
}

// Point is one smoothed observation. The zero Point is undefined.
type Point struct {
	Value   float64
	Defined bool
}

// Undefined returns the marker used for positions where the window has not filled yet.
func Undefined() Point {
	return Point{}
}

// Defined wraps v as a defined point.
func Defined(v float64) Point {
	return Point{Value: v, Defined: true}
}

// MovingAverage calculates a trailing simple moving average of values.
//
// The result has the same length as values. Position i holds the mean of
// values[i-window+1..i] when i >= window-1 and is undefined otherwise, so a
// window larger than the input yields only undefined points. The sum is
// carried incrementally and always divided by window, so values of very
// different magnitude in one window lose precision; integer counts are exact.
func MovingAverage[T Number](values []T, window int) ([]Point, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", ErrInvalidArgument, window)
	}
	for i, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: non-finite value %v at index %d", ErrInvalidArgument, f, i)
		}
	}

	means := make([]Point, len(values))
	w := float64(window)
	sum := 0.0

	i := 0
	for n := min(window-1, len(values)); i < n; i++ {
		sum += float64(values[i])
	}
	for ; i < len(values); i++ {
		sum += float64(values[i])
		means[i] = Defined(sum / w)
		sum -= float64(values[i-window+1])
	}

	return means, nil
}
