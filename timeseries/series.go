// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"time"
)

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Sum returns the total of all values.
func (s *Series) Sum() float64 {
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum
}

// Max returns the largest value. ok is false for an empty series.
func (s *Series) Max() (peak float64, ok bool) {
	for i, v := range s.Values {
		if i == 0 || v > peak {
			peak = v
		}
	}
	return peak, len(s.Values) > 0
}

// Smooth applies a trailing moving average of the given window. The result
// keeps every timestamp; leading positions are undefined until the window fills.
func (s *Series) Smooth(window int) (*Smoothed, error) {
	points, err := MovingAverage(s.Values, window)
	if err != nil {
		return nil, err
	}

	timestamps := make([]time.Time, len(points))
	copy(timestamps, s.Timestamps)

	return &Smoothed{
		Timestamps: timestamps,
		Points:     points,
		Window:     window,
		Name:       s.Name + "_ma",
	}, nil
}

// Smoothed is a moving-average series index-aligned with the series it was
// computed from.
type Smoothed struct {
	Timestamps []time.Time
	Points     []Point
	Window     int
	Name       string
}

// Len returns the number of points, defined or not.
func (s *Smoothed) Len() int {
	return len(s.Points)
}

// Defined returns how many points carry a value.
func (s *Smoothed) Defined() int {
	n := 0
	for _, p := range s.Points {
		if p.Defined {
			n++
		}
	}
	return n
}

// Max returns the largest defined value. ok is false when no point is defined.
func (s *Smoothed) Max() (max float64, ok bool) {
	for _, p := range s.Points {
		if !p.Defined {
			continue
		}
		if !ok || p.Value > max {
			max = p.Value
			ok = true
		}
	}
	return max, ok
}
