package deaths

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoRecords is returned when a source holds no usable rows.
var ErrNoRecords = errors.New("no valid records found in CSV")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn string // Column name for the date of death (default: "datum")
	AgeColumn  string // Column name for the age (default: "vek")
	DateFormat string // Date format (default: "2006-01-02")
	Delimiter  rune   // Field delimiter (default: ',')
	SkipRows   int    // Number of rows to skip before the header
}

// DefaultCSVOptions returns default options for the public mortality dataset.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn: "datum",
		AgeColumn:  "vek",
		DateFormat: "2006-01-02",
		Delimiter:  ',',
	}
}

// LoadCSV loads death records from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) ([]Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads death records from an io.Reader. Rows whose date
// cannot be parsed are skipped; a missing or unparseable age is kept as NaN.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) ([]Record, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, err
	}

	dateIdx, ageIdx := -1, -1
	for i, h := range header {
		switch clean(h) {
		case opts.DateColumn:
			dateIdx = i
		case opts.AgeColumn:
			ageIdx = i
		}
	}
	if dateIdx == -1 {
		return nil, fmt.Errorf("date column %q not found", opts.DateColumn)
	}
	if ageIdx == -1 {
		return nil, fmt.Errorf("age column %q not found", opts.AgeColumn)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if dateIdx >= len(row) {
			continue
		}
		date, err := time.Parse(opts.DateFormat, clean(row[dateIdx]))
		if err != nil {
			continue
		}

		// A death with an unknown age still counts towards the all-ages total.
		age := math.NaN()
		if ageIdx < len(row) {
			if v, ok := parseAge(clean(row[ageIdx])); ok {
				age = v
			}
		}

		records = append(records, Record{Date: date, Age: age})
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func clean(field string) string {
	return strings.TrimSpace(strings.Trim(field, "\""))
}

func parseAge(s string) (float64, bool) {
	if s == "" || s == "NA" || s == "NaN" || s == "null" {
		return 0, false
	}
	age, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(age) || math.IsInf(age, 0) {
		return 0, false
	}
	return age, true
}
