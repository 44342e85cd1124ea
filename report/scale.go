package report

import (
	"math"
	"time"
)

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
	Round  bool // round mapped values to whole pixels
}

// Map projects v from the domain onto the range. A zero-width domain maps
// every value to the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]

	var out float64
	if d1 == d0 {
		out = (r0 + r1) / 2
	} else {
		out = r0 + (v-d0)/(d1-d0)*(r1-r0)
	}
	if s.Round {
		out = math.Round(out)
	}
	return out
}

// Nice extends the domain outward so both ends fall on a multiple of a
// 1, 2 or 5 step sized for roughly count ticks.
func (s LinearScale) Nice(count int) LinearScale {
	d0, d1 := s.Domain[0], s.Domain[1]
	reversed := d1 < d0
	if reversed {
		d0, d1 = d1, d0
	}

	var prev float64
	for i := 0; i < 10; i++ {
		step := tickIncrement(d0, d1, count)
		if step == prev || step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
			break
		}
		if step > 0 {
			d0 = math.Floor(d0/step) * step
			d1 = math.Ceil(d1/step) * step
		} else {
			d0 = math.Ceil(d0*step) / step
			d1 = math.Floor(d1*step) / step
		}
		prev = step
	}

	if reversed {
		d0, d1 = d1, d0
	}
	s.Domain = [2]float64{d0, d1}
	return s
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns the tick step for [start, stop]. Steps below one are
// returned as negative inverses so that small steps stay exact.
func tickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || stop <= start {
		return 0
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// TimeScale maps instants onto a pixel range.
type TimeScale struct {
	Start, End time.Time
	Range      [2]float64
	Round      bool
}

// Map projects t onto the range.
func (s TimeScale) Map(t time.Time) float64 {
	return s.linear().Map(unix(t))
}

func (s TimeScale) linear() LinearScale {
	return LinearScale{
		Domain: [2]float64{unix(s.Start), unix(s.End)},
		Range:  s.Range,
		Round:  s.Round,
	}
}

func unix(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
