// Package covidmortality turns individual COVID-19 death records into the
// data behind a set of mortality charts.
//
// # Features
//
//   - Loading the public Czech mortality dataset from CSV or over HTTP
//   - Filtering by age band and binning into per-day counts
//   - Trailing moving average with explicit undefined points
//   - Hexagonal binning of deaths by date and age
//   - Average age of the deceased per day
//   - JSON export of every chart for an external renderer
//
// # Quick Start
//
//	records, err := deaths.LoadCSV("umrti.csv", nil)
//	daily, err := deaths.DailyCounts(records)
//	smoothed, err := daily.Smooth(4)
//
// Build every chart at once:
//
//	b, _ := report.NewBuilder(report.DefaultConfig())
//	r, err := b.Build(records)
//	err = report.SaveJSON(r, "mortality_report.json")
//
// # Packages
//
//   - timeseries: Series, moving average and streaming window
//   - deaths: record loading, age bands and per-day aggregation
//   - report: scales, hexbin and chart data
package covidmortality
