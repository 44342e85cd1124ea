package report

import (
	"fmt"
	"time"

	"github.com/pion/logging"
	"github.com/sartorproj/covidmortality/deaths"
	"github.com/sartorproj/covidmortality/timeseries"
)

// Config holds the settings of a report.
type Config struct {
	Layout     Layout
	Window     int              // moving average window in days
	Bands      []deaths.AgeBand // one daily deaths chart per band
	HexRadius  float64          // hexagon radius relative to Width/(Height-1)
	YTickCount int              // tick count the Y domains are made nice for
}

// DefaultConfig returns the configuration of the published charts: a four day
// window over the default age bands.
func DefaultConfig() Config {
	return Config{
		Layout:     DefaultLayout(),
		Window:     4,
		Bands:      deaths.DefaultBands(),
		HexRadius:  1,
		YTickCount: 10,
	}
}

// Option is a functional option for a Builder.
type Option func(*Builder) error

// WithLoggerFactory configures a custom logger factory for a Builder.
func WithLoggerFactory(lf logging.LoggerFactory) Option {
	return func(b *Builder) error {
		b.logFactory = lf

		return nil
	}
}

// WithWindow overrides the moving average window.
func WithWindow(days int) Option {
	return func(b *Builder) error {
		if days <= 0 {
			return fmt.Errorf("%w: window must be positive, got %d", timeseries.ErrInvalidArgument, days)
		}
		b.cfg.Window = days

		return nil
	}
}

// WithBands replaces the age bands charted.
func WithBands(bands ...deaths.AgeBand) Option {
	return func(b *Builder) error {
		b.cfg.Bands = bands

		return nil
	}
}

// WithLayout replaces the chart layout.
func WithLayout(l Layout) Option {
	return func(b *Builder) error {
		b.cfg.Layout = l

		return nil
	}
}

// Builder turns death records into chart data.
type Builder struct {
	cfg        Config
	logFactory logging.LoggerFactory
	log        logging.LeveledLogger
}

// NewBuilder creates a Builder from cfg and opts.
func NewBuilder(cfg Config, opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg:        cfg,
		logFactory: logging.NewDefaultLoggerFactory(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if b.cfg.Window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", timeseries.ErrInvalidArgument, b.cfg.Window)
	}
	if err := b.cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	if b.cfg.YTickCount <= 0 {
		b.cfg.YTickCount = 10
	}
	b.log = b.logFactory.NewLogger("report_builder")

	return b, nil
}

// Config returns the effective configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build computes every chart of the report.
func (b *Builder) Build(records []deaths.Record) (*Report, error) {
	if len(records) == 0 {
		return nil, deaths.ErrNoRecords
	}

	r := &Report{
		Generated: time.Now().UTC(),
		Layout:    b.cfg.Layout,
		Window:    b.cfg.Window,
		Records:   len(records),
	}

	for _, band := range b.cfg.Bands {
		chart, err := b.DailyDeaths(records, band)
		if err != nil {
			return nil, fmt.Errorf("band %s: %w", band.ID, err)
		}
		b.log.Debugf("band %s: %d days, %d deaths", band.ID, len(chart.Bins), chart.Summary.Count)
		r.DailyDeaths = append(r.DailyDeaths, *chart)
	}

	r.AgeHistogram = b.AgeHistogram(records)
	r.AverageAge = b.AverageAge(records)

	b.log.Infof("built report: %d records, %d bands, %d hex cells",
		r.Records, len(r.DailyDeaths), len(r.AgeHistogram.Cells))

	return r, nil
}

// DailyDeaths builds the smoothed daily deaths chart of one age band.
func (b *Builder) DailyDeaths(records []deaths.Record, band deaths.AgeBand) (*AreaChart, error) {
	selected := deaths.Filter(records, band.Predicate())

	daily, err := deaths.DailyCounts(selected)
	if err != nil {
		return nil, err
	}
	daily.Name = band.ID
	smoothed, err := daily.Smooth(b.cfg.Window)
	if err != nil {
		return nil, err
	}

	summary, err := deaths.Summarize(selected)
	if err != nil {
		return nil, err
	}

	chart := &AreaChart{
		ID:      band.ID,
		Label:   band.Label,
		Total:   int(daily.Sum()),
		Bins:    make([]DayBin, daily.Len()),
		Summary: summary,
	}
	if busiest, ok := daily.Max(); ok {
		chart.PeakDay = int(busiest)
	}
	for i, ts := range daily.Timestamps {
		bin := DayBin{Date: ts, Count: int(daily.Values[i])}
		if p := smoothed.Points[i]; p.Defined {
			v := p.Value
			bin.Smoothed = &v
		}
		chart.Bins[i] = bin
	}
	if daily.Len() > 0 {
		chart.XDomain = [2]time.Time{daily.Timestamps[0], daily.Timestamps[daily.Len()-1]}
	}

	peak, _ := smoothed.Max()
	chart.PeakAverage = peak
	y := LinearScale{Domain: [2]float64{0, peak}, Range: b.cfg.Layout.YRange()}.Nice(b.cfg.YTickCount)
	chart.YDomain = y.Domain

	return chart, nil
}

// AgeHistogram bins every record by date and age into hexagons laid out in
// the plot area.
func (b *Builder) AgeHistogram(records []deaths.Record) HexChart {
	l := b.cfg.Layout
	chart := HexChart{Radius: b.cfg.HexRadius * l.Width / (l.Height - 1)}

	// Deaths of unknown age have no place on the age axis.
	aged := deaths.Filter(records, deaths.Record.KnownAge)
	first, last, ok := deaths.Extent(aged)
	if !ok {
		return chart
	}
	minAge, maxAge := aged[0].Age, aged[0].Age
	for _, r := range aged[1:] {
		minAge = min(minAge, r.Age)
		maxAge = max(maxAge, r.Age)
	}
	chart.XDomain = [2]time.Time{first, last}
	chart.YDomain = [2]float64{minAge, maxAge}

	x := TimeScale{Start: first, End: last, Range: l.XRange(), Round: true}
	y := LinearScale{Domain: chart.YDomain, Range: l.YRange(), Round: true}

	xs := make([]float64, len(aged))
	ys := make([]float64, len(aged))
	for i, r := range aged {
		xs[i] = x.Map(r.Date)
		ys[i] = y.Map(r.Age)
	}

	chart.Cells = Hexbin{Radius: chart.Radius}.Bin(xs, ys)
	for _, c := range chart.Cells {
		chart.MaxCount = max(chart.MaxCount, c.Count)
	}

	return chart
}

// AverageAge builds the line of mean age per day.
func (b *Builder) AverageAge(records []deaths.Record) LineChart {
	points := deaths.AverageAgeByDay(records)

	chart := LineChart{Points: make([]AgePoint, len(points))}
	peak := 0.0
	for i, p := range points {
		chart.Points[i] = AgePoint{Date: p.Date, Mean: p.Mean, Count: p.Count}
		peak = max(peak, p.Mean)
	}
	if len(points) > 0 {
		chart.XDomain = [2]time.Time{points[0].Date, points[len(points)-1].Date}
	}

	y := LinearScale{Domain: [2]float64{0, peak}, Range: b.cfg.Layout.YRange()}.Nice(b.cfg.YTickCount)
	chart.YDomain = y.Domain

	return chart
}
