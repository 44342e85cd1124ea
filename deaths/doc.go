// Package deaths loads individual COVID-19 death records and aggregates them
// into per-day series.
//
// Records come from a CSV file or from the public dataset over HTTP:
//
//	src, _ := deaths.NewSource()
//	records, err := src.Fetch(ctx)
//
// They are filtered by age band and binned per calendar day before smoothing:
//
//	for _, band := range deaths.DefaultBands() {
//	    daily, err := deaths.DailyCounts(deaths.Filter(records, band.Predicate()))
//	    ...
//	    smoothed, err := daily.Smooth(4)
//	    ...
//	}
package deaths
