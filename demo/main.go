// Package main builds the COVID-19 mortality chart data from the public
// Czech dataset and exports it as JSON for rendering.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pion/logging"
	"github.com/sartorproj/covidmortality/deaths"
	"github.com/sartorproj/covidmortality/report"
	"github.com/sartorproj/covidmortality/timeseries"
)

func main() {
	var (
		input   = flag.String("input", "", "local CSV file (default: download "+deaths.DefaultURL+")")
		output  = flag.String("output", "mortality_report.json", "JSON report destination")
		csvDir  = flag.String("csv", "", "also write per-band daily counts as CSV into this directory")
		window  = flag.Int("window", report.DefaultConfig().Window, "moving average window in days")
		timeout = flag.Duration("timeout", 2*time.Minute, "download timeout")
	)
	flag.Parse()

	logFactory := logging.NewDefaultLoggerFactory()
	log := logFactory.NewLogger("demo")

	if err := run(logFactory, log, *input, *output, *csvDir, *window, *timeout); err != nil {
		if errors.Is(err, timeseries.ErrInvalidArgument) {
			log.Errorf("configuration error: %v", err)
			os.Exit(2)
		}
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(lf logging.LoggerFactory, log logging.LeveledLogger, input, output, csvDir string, window int, timeout time.Duration) error {
	builder, err := report.NewBuilder(report.DefaultConfig(),
		report.WithWindow(window),
		report.WithLoggerFactory(lf),
	)
	if err != nil {
		return err
	}

	records, err := load(lf, input, timeout)
	if err != nil {
		return err
	}
	first, last, _ := deaths.Extent(records)
	log.Infof("loaded %d records (%s to %s)", len(records),
		first.Format(timeseries.DateFormat), last.Format(timeseries.DateFormat))

	r, err := builder.Build(records)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("%-22s %8s %10s %10s\n", "Band", "Deaths", "Peak MA", "Median age")
	fmt.Println(strings.Repeat("=", 60))
	for _, c := range r.DailyDeaths {
		fmt.Printf("%-22s %8d %10.2f %10.1f\n", c.Label, c.Total, c.PeakAverage, c.Summary.Median)
	}
	fmt.Println(strings.Repeat("=", 60))

	if err := report.SaveJSON(r, output); err != nil {
		return err
	}
	log.Infof("exported report to %s", output)

	if csvDir != "" {
		return exportCSV(builder.Config(), records, csvDir)
	}
	return nil
}

// load reads records from a local file or downloads the public dataset.
func load(lf logging.LoggerFactory, input string, timeout time.Duration) ([]deaths.Record, error) {
	if input != "" {
		return deaths.LoadCSV(input, deaths.DefaultCSVOptions())
	}

	src, err := deaths.NewSource(deaths.WithLoggerFactory(lf))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return src.Fetch(ctx)
}

// exportCSV writes one "<band>.csv" per age band with daily counts and their
// moving average, streaming each band's days through one window.
func exportCSV(cfg report.Config, records []deaths.Record, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	w, err := timeseries.NewWindow(cfg.Window)
	if err != nil {
		return err
	}

	for _, band := range cfg.Bands {
		daily, err := deaths.DailyCounts(deaths.Filter(records, band.Predicate()))
		if err != nil {
			return err
		}
		smoothed, err := w.Smooth(daily)
		if err != nil {
			return err
		}

		file, err := os.Create(filepath.Join(dir, band.ID+".csv"))
		if err != nil {
			return err
		}
		if err := timeseries.WriteCSV(file, daily, smoothed); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}
