package report

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sartorproj/covidmortality/deaths"
)

// Report holds the data of every chart, ready for a renderer.
type Report struct {
	Generated    time.Time   `json:"generated"`
	Layout       Layout      `json:"layout"`
	Window       int         `json:"window"`
	Records      int         `json:"records"`
	DailyDeaths  []AreaChart `json:"daily_deaths"`
	AgeHistogram HexChart    `json:"age_histogram"`
	AverageAge   LineChart   `json:"average_age"`
}

// DayBin is one day of an area chart. Smoothed is nil until the moving
// average window has filled.
type DayBin struct {
	Date     time.Time `json:"date"`
	Count    int       `json:"count"`
	Smoothed *float64  `json:"smoothed"`
}

// AreaChart is the smoothed daily deaths of one age band. PeakDay is the
// largest single-day count and PeakAverage the largest moving average.
type AreaChart struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Total       int            `json:"total"`
	PeakDay     int            `json:"peak_day"`
	PeakAverage float64        `json:"peak_average"`
	XDomain     [2]time.Time   `json:"x_domain"`
	YDomain     [2]float64     `json:"y_domain"`
	Bins        []DayBin       `json:"bins"`
	Summary     deaths.Summary `json:"summary"`
}

// HexChart is the age against date density plot. MaxCount bounds the color
// scale of the renderer.
type HexChart struct {
	Radius   float64      `json:"radius"`
	XDomain  [2]time.Time `json:"x_domain"`
	YDomain  [2]float64   `json:"y_domain"`
	Cells    []HexCell    `json:"cells"`
	MaxCount int          `json:"max_count"`
}

// AgePoint is the mean age of one day's deaths.
type AgePoint struct {
	Date  time.Time `json:"date"`
	Mean  float64   `json:"mean"`
	Count int       `json:"count"`
}

// LineChart is the average age over time.
type LineChart struct {
	XDomain [2]time.Time `json:"x_domain"`
	YDomain [2]float64   `json:"y_domain"`
	Points  []AgePoint   `json:"points"`
}

// Chart returns the daily deaths chart with the given band ID.
func (r *Report) Chart(id string) (*AreaChart, bool) {
	for i := range r.DailyDeaths {
		if r.DailyDeaths[i].ID == id {
			return &r.DailyDeaths[i], true
		}
	}
	return nil, false
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SaveJSON writes the report to a file.
func SaveJSON(r *Report, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := WriteJSON(file, r); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
