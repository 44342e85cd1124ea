package timeseries

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

// DateFormat is the layout used for timestamps in CSV output.
const DateFormat = "2006-01-02"

// WriteCSV writes a series as "ds,y" rows. When smoothed is non-nil it must be
// aligned with series and adds a third "ma" column, left empty where the
// average is undefined.
func WriteCSV(w io.Writer, series *Series, smoothed *Smoothed) error {
	if smoothed != nil && smoothed.Len() != series.Len() {
		return errors.New("smoothed series must be aligned with the series")
	}

	writer := csv.NewWriter(w)

	header := []string{"ds", "y"}
	if smoothed != nil {
		header = append(header, "ma")
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	hasDates := len(series.Timestamps) == len(series.Values)
	for i, v := range series.Values {
		row := make([]string, 0, len(header))
		if hasDates {
			row = append(row, series.Timestamps[i].Format(DateFormat))
		} else {
			row = append(row, strconv.Itoa(i+1))
		}
		row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		if smoothed != nil {
			ma := ""
			if p := smoothed.Points[i]; p.Defined {
				ma = strconv.FormatFloat(p.Value, 'f', -1, 64)
			}
			row = append(row, ma)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
