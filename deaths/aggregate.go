package deaths

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sartorproj/covidmortality/timeseries"
	"gonum.org/v1/gonum/stat"
)

// DailyCounts bins records into one count per calendar day, from the day of
// the earliest record to the day of the latest one. Days without records
// count zero.
func DailyCounts(records []Record) (*timeseries.Series, error) {
	first, last, ok := Extent(records)
	if !ok {
		return timeseries.NewWithTimestamps([]time.Time{}, []float64{})
	}
	start, end := Day(first), Day(last)

	n := dayIndex(start, end) + 1
	timestamps := make([]time.Time, n)
	for i := range timestamps {
		timestamps[i] = start.AddDate(0, 0, i)
	}

	values := make([]float64, n)
	for _, r := range records {
		values[dayIndex(start, Day(r.Date))]++
	}

	series, err := timeseries.NewWithTimestamps(timestamps, values)
	if err != nil {
		return nil, err
	}
	series.Name = "deaths"

	return series, nil
}

// dayIndex counts calendar days from start to day, both at midnight UTC.
func dayIndex(start, day time.Time) int {
	return int(day.Sub(start).Round(time.Hour).Hours() / 24)
}

// AgePoint is the mean age of the deaths reported on one day.
type AgePoint struct {
	Date  time.Time
	Mean  float64
	Count int
}

// AverageAgeByDay returns the mean age per distinct day, ordered by day.
// Days without records of known age are absent rather than zero.
func AverageAgeByDay(records []Record) []AgePoint {
	byDay := make(map[time.Time][]float64)
	for _, r := range records {
		if !r.KnownAge() {
			continue
		}
		d := Day(r.Date)
		byDay[d] = append(byDay[d], r.Age)
	}

	points := make([]AgePoint, 0, len(byDay))
	for d, ages := range byDay {
		points = append(points, AgePoint{
			Date:  d,
			Mean:  stat.Mean(ages, nil),
			Count: len(ages),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

// Summary describes the age distribution of a set of records. Count includes
// deaths of unknown age; the age statistics cover the others.
type Summary struct {
	Count      int     `json:"count"`
	UnknownAge int     `json:"unknown_age"`
	Min        float64 `json:"min_age"`
	Max        float64 `json:"max_age"`
	Mean       float64 `json:"mean_age"`
	Median     float64 `json:"median_age"`
	P90        float64 `json:"p90_age"`
}

// Summarize computes age statistics. Without any known age only the counts
// are set.
func Summarize(records []Record) (Summary, error) {
	ages := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		if r.KnownAge() {
			ages = append(ages, r.Age)
		}
	}

	var (
		s   = Summary{Count: len(records), UnknownAge: len(records) - len(ages)}
		err error
	)
	if len(ages) == 0 {
		return s, nil
	}
	if s.Min, err = ages.Min(); err != nil {
		return Summary{}, err
	}
	if s.Max, err = ages.Max(); err != nil {
		return Summary{}, err
	}
	if s.Mean, err = ages.Mean(); err != nil {
		return Summary{}, err
	}
	if s.Median, err = ages.Median(); err != nil {
		return Summary{}, err
	}
	if s.P90, err = ages.PercentileNearestRank(90); err != nil {
		return Summary{}, err
	}

	return s, nil
}
