package timeseries

import (
	"fmt"
	"math"
	"time"

	"github.com/gammazero/deque"
)

// Window is a streaming trailing moving average. Feeding it a series one
// value at a time yields the same points as MovingAverage over the whole
// series, which lets callers smooth daily counts as new days arrive.
type Window struct {
	size   int
	values *deque.Deque[float64]
	sum    float64
}

// NewWindow creates a streaming moving average over size values.
func NewWindow(size int) (*Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", ErrInvalidArgument, size)
	}
	return &Window{
		size:   size,
		values: deque.New[float64](size),
	}, nil
}

// Size returns the window size.
func (w *Window) Size() int {
	return w.size
}

// Full reports whether the window holds size values.
func (w *Window) Full() bool {
	return w.values.Len() == w.size
}

// Push adds v and returns the average of the last size values, or an
// undefined point while the window is still filling.
func (w *Window) Push(v float64) (Point, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Point{}, fmt.Errorf("%w: non-finite value %v", ErrInvalidArgument, v)
	}

	if w.Full() {
		w.sum -= w.values.PopFront()
	}
	w.values.PushBack(v)
	w.sum += v

	if !w.Full() {
		return Undefined(), nil
	}
	return Defined(w.sum / float64(w.size)), nil
}

// Reset empties the window.
func (w *Window) Reset() {
	w.values.Clear()
	w.sum = 0
}

// Smooth resets the window and streams every value of s through it, one
// day at a time, returning the points aligned with s.
func (w *Window) Smooth(s *Series) (*Smoothed, error) {
	w.Reset()

	points := make([]Point, len(s.Values))
	for i, v := range s.Values {
		p, err := w.Push(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		points[i] = p
	}

	timestamps := make([]time.Time, len(points))
	copy(timestamps, s.Timestamps)

	return &Smoothed{
		Timestamps: timestamps,
		Points:     points,
		Window:     w.size,
		Name:       s.Name + "_ma",
	}, nil
}
