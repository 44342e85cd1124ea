// Package timeseries provides time series data structures and smoothing.
//
// A Series holds one value per timestamp, typically a count of events per
// calendar day. Smoothing produces an index-aligned series of Points where
// positions before the window fills are explicitly undefined rather than
// zero or NaN.
//
// # Moving Average
//
// Smooth a plain slice of counts:
//
//	points, err := timeseries.MovingAverage([]int{1, 2, 3, 4, 5, 6}, 4)
//	// points[0..2] undefined, points[3].Value == 2.5
//
// Or a dated series:
//
//	smoothed, err := series.Smooth(7)
//	if errors.Is(err, timeseries.ErrInvalidArgument) {
//	    // window was not positive
//	}
//	peak, ok := smoothed.Max()
//
// # Streaming
//
// Window computes the same averages one value at a time:
//
//	w, _ := timeseries.NewWindow(7)
//	for _, count := range daily {
//	    p, _ := w.Push(count)
//	    if p.Defined {
//	        fmt.Println(p.Value)
//	    }
//	}
//
// # CSV Output
//
// Write a series together with its moving average:
//
//	err := timeseries.WriteCSV(os.Stdout, series, smoothed)
package timeseries
