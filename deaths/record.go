package deaths

import (
	"fmt"
	"math"
	"time"
)

// Record is a single reported death. Age is NaN when the dataset does not
// state it.
type Record struct {
	Date time.Time
	Age  float64
}

// KnownAge reports whether the record carries an age.
func (r Record) KnownAge() bool {
	return !math.IsNaN(r.Age)
}

// Predicate selects records.
type Predicate func(Record) bool

// All accepts every record.
func All(Record) bool { return true }

// AgeBand is a half-open age interval [Min, Max). Unbounded ends use
// math.Inf. A band unbounded on both ends also holds unknown (NaN) ages.
type AgeBand struct {
	ID    string
	Label string
	Min   float64
	Max   float64
}

// Contains reports whether age falls inside the band.
func (b AgeBand) Contains(age float64) bool {
	if math.IsInf(b.Min, -1) && math.IsInf(b.Max, 1) {
		return true
	}
	return age >= b.Min && age < b.Max
}

// Predicate returns a predicate matching records in the band.
func (b AgeBand) Predicate() Predicate {
	return func(r Record) bool { return b.Contains(r.Age) }
}

// NewAgeBand builds a band, naming it after its bounds.
func NewAgeBand(id string, min, max float64) (AgeBand, error) {
	if math.IsNaN(min) || math.IsNaN(max) || min >= max {
		return AgeBand{}, fmt.Errorf("invalid age band [%v, %v)", min, max)
	}
	return AgeBand{ID: id, Label: bandLabel(min, max), Min: min, Max: max}, nil
}

func bandLabel(min, max float64) string {
	switch {
	case math.IsInf(min, -1) && math.IsInf(max, 1):
		return "all ages"
	case math.IsInf(max, 1):
		return fmt.Sprintf("%g+", min)
	case math.IsInf(min, -1):
		return fmt.Sprintf("under %g", max)
	default:
		return fmt.Sprintf("%g-%g", min, max)
	}
}

// DefaultBands returns the overall band followed by the age bands charted
// for the public dataset.
func DefaultBands() []AgeBand {
	inf := math.Inf(1)
	bands := []struct {
		id       string
		min, max float64
	}{
		{"daily_deaths", -inf, inf},
		{"daily_deaths_85", 85, inf},
		{"daily_deaths_75", 75, 85},
		{"daily_deaths_65", 65, 75},
		{"daily_deaths_60", 60, 65},
		{"daily_deaths_55", 55, 60},
		{"daily_deaths_55_less", -inf, 55},
	}

	out := make([]AgeBand, len(bands))
	for i, b := range bands {
		out[i] = AgeBand{ID: b.id, Label: bandLabel(b.min, b.max), Min: b.min, Max: b.max}
	}
	return out
}

// Filter returns the records matching pred in a new slice.
func Filter(records []Record, pred Predicate) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Extent returns the earliest and latest record dates. ok is false for no
// records.
func Extent(records []Record) (first, last time.Time, ok bool) {
	for _, r := range records {
		if !ok || r.Date.Before(first) {
			first = r.Date
		}
		if !ok || r.Date.After(last) {
			last = r.Date
		}
		ok = true
	}
	return first, last, ok
}
