package report

import "errors"

// Margin is the space reserved around a chart's plot area, in pixels.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Layout holds the dimensions shared by the charts of a report. It is passed
// to every chart build instead of living in package state.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// DefaultLayout returns an 800x250 layout.
func DefaultLayout() Layout {
	return Layout{
		Width:  800,
		Height: 250,
		Margin: Margin{Top: 20, Right: 30, Bottom: 30, Left: 12},
	}
}

// Validate checks that the plot area is not empty.
func (l Layout) Validate() error {
	if l.Width-l.Margin.Left-l.Margin.Right <= 0 {
		return errors.New("layout leaves no horizontal plot area")
	}
	if l.Height-l.Margin.Top-l.Margin.Bottom <= 0 {
		return errors.New("layout leaves no vertical plot area")
	}
	return nil
}

// XRange is the horizontal pixel extent of the plot area.
func (l Layout) XRange() [2]float64 {
	return [2]float64{l.Margin.Left, l.Width - l.Margin.Right}
}

// YRange is the vertical pixel extent of the plot area, bottom first so that
// larger values are drawn higher.
func (l Layout) YRange() [2]float64 {
	return [2]float64{l.Height - l.Margin.Bottom, l.Margin.Top}
}
