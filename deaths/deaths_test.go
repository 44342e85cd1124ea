package deaths

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,datum,vek,pohlavi,kraj_nuts_kod
1,2020-03-22,95,M,CZ010
2,2020-03-22,79,Z,CZ010
3,2020-03-24,58,M,CZ020
4,2020-03-24,NA,M,CZ020
5,not-a-date,70,Z,CZ031
6,2020-03-25,66,Z,CZ031
7,2020-03-25,"88",M,CZ031
`

func date(day int) time.Time {
	return time.Date(2020, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestLoadCSVFromReader(t *testing.T) {
	records, err := LoadCSVFromReader(strings.NewReader(sampleCSV), nil)
	require.NoError(t, err)

	require.Len(t, records, 6)

	unknown := records[3]
	assert.Equal(t, date(24), unknown.Date)
	assert.True(t, math.IsNaN(unknown.Age))
	assert.False(t, unknown.KnownAge())

	expected := []Record{
		{Date: date(22), Age: 95},
		{Date: date(22), Age: 79},
		{Date: date(24), Age: 58},
		{Date: date(25), Age: 66},
		{Date: date(25), Age: 88},
	}
	known := Filter(records, Record.KnownAge)
	assert.Equal(t, expected, known)
}

func TestLoadCSVKeepsUnknownAge(t *testing.T) {
	csvData := "datum,vek\n2020-01-01,\n2020-01-01,abc\n2020-01-02,nan\n2020-01-02,61\n"

	records, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)
	require.Len(t, records, 4)
	for _, r := range records[:3] {
		assert.True(t, math.IsNaN(r.Age), "%v", r)
	}
	assert.Equal(t, 61.0, records[3].Age)
}

func TestLoadCSVCustomColumns(t *testing.T) {
	csvData := "day;age\n2021-01-02;40\n2021-01-03;41\n"
	opts := DefaultCSVOptions()
	opts.DateColumn = "day"
	opts.AgeColumn = "age"
	opts.Delimiter = ';'

	records, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 41.0, records[1].Age)
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		csvData string
		noRows  bool
	}{
		{"empty input", "", true},
		{"header only", "datum,vek\n", true},
		{"all invalid", "datum,vek\nbad,3\n,NA\n", true},
		{"missing age column", "datum,age\n2020-01-01,3\n", false},
		{"missing date column", "date,vek\n2020-01-01,3\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSVFromReader(strings.NewReader(tt.csvData), DefaultCSVOptions())
			require.Error(t, err)
			if tt.noRows {
				assert.ErrorIs(t, err, ErrNoRecords)
			} else {
				assert.NotErrorIs(t, err, ErrNoRecords)
			}
		})
	}
}

func TestDefaultBands(t *testing.T) {
	bands := DefaultBands()
	require.Len(t, bands, 7)

	ids := make([]string, len(bands))
	for i, b := range bands {
		ids[i] = b.ID
	}
	assert.Equal(t, []string{
		"daily_deaths", "daily_deaths_85", "daily_deaths_75", "daily_deaths_65",
		"daily_deaths_60", "daily_deaths_55", "daily_deaths_55_less",
	}, ids)

	tests := []struct {
		age  float64
		band string
	}{
		{100, "daily_deaths_85"},
		{85, "daily_deaths_85"},
		{84.9, "daily_deaths_75"},
		{75, "daily_deaths_75"},
		{74, "daily_deaths_65"},
		{64, "daily_deaths_60"},
		{55, "daily_deaths_55"},
		{54, "daily_deaths_55_less"},
		{0, "daily_deaths_55_less"},
	}
	for _, tt := range tests {
		matched := []string{}
		for _, b := range bands[1:] {
			if b.Contains(tt.age) {
				matched = append(matched, b.ID)
			}
		}
		assert.Equal(t, []string{tt.band}, matched, "age %v", tt.age)
		assert.True(t, bands[0].Contains(tt.age))
	}

	assert.Equal(t, "all ages", bands[0].Label)
	assert.Equal(t, "85+", bands[1].Label)
	assert.Equal(t, "75-85", bands[2].Label)
	assert.Equal(t, "under 55", bands[6].Label)
}

func TestNewAgeBand(t *testing.T) {
	b, err := NewAgeBand("teens", 13, 20)
	require.NoError(t, err)
	assert.Equal(t, "13-20", b.Label)
	assert.True(t, b.Contains(13))
	assert.False(t, b.Contains(20))

	_, err = NewAgeBand("empty", 20, 20)
	assert.Error(t, err)
	_, err = NewAgeBand("nan", math.NaN(), 20)
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	records := []Record{{Date: date(1), Age: 90}, {Date: date(1), Age: 50}, {Date: date(2), Age: 86}}
	band := DefaultBands()[1]

	old := Filter(records, band.Predicate())
	assert.Len(t, old, 2)
	assert.Len(t, Filter(records, All), 3)

	old[0].Age = 1
	assert.Equal(t, 90.0, records[0].Age, "filter must not alias its input")
}

func TestDailyCounts(t *testing.T) {
	records, err := LoadCSVFromReader(strings.NewReader(sampleCSV), nil)
	require.NoError(t, err)

	daily, err := DailyCounts(records)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 2, 2}, daily.Values)
	assert.Equal(t, "deaths", daily.Name)
	require.Len(t, daily.Timestamps, 4)
	assert.Equal(t, date(22), daily.Timestamps[0])
	assert.Equal(t, date(25), daily.Timestamps[3])
	assert.Equal(t, float64(len(records)), daily.Sum())
}

func TestDailyCountsIgnoresTimeOfDay(t *testing.T) {
	records := []Record{
		{Date: date(1).Add(23 * time.Hour), Age: 80},
		{Date: date(2).Add(time.Minute), Age: 80},
		{Date: date(2).Add(12 * time.Hour), Age: 80},
	}
	daily, err := DailyCounts(records)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, daily.Values)
}

func TestDailyCountsEmpty(t *testing.T) {
	daily, err := DailyCounts(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, daily.Len())

	smoothed, err := daily.Smooth(4)
	require.NoError(t, err)
	assert.Equal(t, 0, smoothed.Len())
}

func TestAverageAgeByDay(t *testing.T) {
	records := []Record{
		{Date: date(3), Age: 70},
		{Date: date(1), Age: 80},
		{Date: date(1), Age: 90},
		{Date: date(3), Age: 60},
		{Date: date(3), Age: 80},
	}

	points := AverageAgeByDay(records)
	require.Len(t, points, 2)

	assert.Equal(t, date(1), points[0].Date)
	assert.InDelta(t, 85.0, points[0].Mean, 1e-10)
	assert.Equal(t, 2, points[0].Count)

	assert.Equal(t, date(3), points[1].Date)
	assert.InDelta(t, 70.0, points[1].Mean, 1e-10)
	assert.Equal(t, 3, points[1].Count)

	assert.Empty(t, AverageAgeByDay(nil))
}

func TestAverageAgeByDaySkipsUnknownAge(t *testing.T) {
	records := []Record{
		{Date: date(1), Age: 80},
		{Date: date(1), Age: math.NaN()},
		{Date: date(2), Age: math.NaN()},
	}

	points := AverageAgeByDay(records)
	require.Len(t, points, 1)
	assert.Equal(t, date(1), points[0].Date)
	assert.Equal(t, 80.0, points[0].Mean)
	assert.Equal(t, 1, points[0].Count)
}

func TestUnknownAgeBands(t *testing.T) {
	bands := DefaultBands()
	assert.True(t, bands[0].Contains(math.NaN()))
	for _, b := range bands[1:] {
		assert.False(t, b.Contains(math.NaN()), b.ID)
	}

	records := []Record{{Date: date(1), Age: 90}, {Date: date(1), Age: math.NaN()}}
	assert.Len(t, Filter(records, bands[0].Predicate()), 2)
	assert.Len(t, Filter(records, bands[1].Predicate()), 1)
}

func TestSummarize(t *testing.T) {
	records := make([]Record, 10)
	for i := range records {
		records[i] = Record{Date: date(1), Age: float64(i + 1)}
	}

	s, err := Summarize(records)
	require.NoError(t, err)

	assert.Equal(t, 10, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 10.0, s.Max)
	assert.InDelta(t, 5.5, s.Mean, 1e-10)
	assert.InDelta(t, 5.5, s.Median, 1e-10)
	assert.Equal(t, 9.0, s.P90)

	empty, err := Summarize(nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, empty)
}

func TestSummarizeUnknownAge(t *testing.T) {
	records := []Record{
		{Date: date(1), Age: 70},
		{Date: date(1), Age: math.NaN()},
		{Date: date(2), Age: 90},
	}

	s, err := Summarize(records)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.UnknownAge)
	assert.Equal(t, 70.0, s.Min)
	assert.Equal(t, 90.0, s.Max)
	assert.InDelta(t, 80.0, s.Mean, 1e-10)

	s, err = Summarize([]Record{{Date: date(1), Age: math.NaN()}})
	require.NoError(t, err)
	assert.Equal(t, Summary{Count: 1, UnknownAge: 1}, s)
}

func TestSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	src, err := NewSource(WithURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	assert.Equal(t, server.URL, src.URL())

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 6)
}

func TestSourceFetchStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	src, err := NewSource(WithURL(server.URL))
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestSourceFetchCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	src, err := NewSource(WithURL(server.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSourceRejectsNilClient(t *testing.T) {
	_, err := NewSource(WithHTTPClient(nil))
	assert.Error(t, err)
}

func TestSourceFetchCustomColumns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("day,age\n2021-01-02,40\n"))
	}))
	defer server.Close()

	opts := DefaultCSVOptions()
	opts.DateColumn = "day"
	opts.AgeColumn = "age"

	src, err := NewSource(WithURL(server.URL), WithCSVOptions(opts))
	require.NoError(t, err)

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Record{{Date: time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), Age: 40}}, records)
}
