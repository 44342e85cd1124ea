// Package report computes the data behind the mortality charts: smoothed
// daily deaths per age band, an age against date hexbin density and the
// average age per day.
//
// Nothing here draws. A Report carries domains, bins and cells in the pixel
// space of a Layout and is exported as JSON for a renderer:
//
//	b, err := report.NewBuilder(report.DefaultConfig(), report.WithWindow(7))
//	if err != nil {
//	    return err
//	}
//	r, err := b.Build(records)
//	if err != nil {
//	    return err
//	}
//	err = report.SaveJSON(r, "mortality_report.json")
package report
