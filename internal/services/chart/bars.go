package chart

import (
	"fmt"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// barSeries draws one filled rectangle per point and shows up once in the legend.
type barSeries struct {
	Name    string
	Style   gochart.Style
	Width   float64
	XValues []float64
	YValues []float64
}

// GetName returns the legend label.
func (b barSeries) GetName() string {
	return b.Name
}

// GetStyle returns the series style.
func (b barSeries) GetStyle() gochart.Style {
	return b.Style
}

// GetYAxis returns which y axis the series is mapped to.
func (b barSeries) GetYAxis() gochart.YAxisType {
	return gochart.YAxisPrimary
}

// Len returns the number of bars.
func (b barSeries) Len() int {
	return len(b.XValues)
}

// GetValues returns the (round, height) pair of a bar.
func (b barSeries) GetValues(index int) (float64, float64) {
	return b.XValues[index], b.YValues[index]
}

// Validate validates the series.
func (b barSeries) Validate() error {
	if len(b.XValues) == 0 {
		return fmt.Errorf("bar series %q has no values", b.Name)
	}
	if len(b.XValues) != len(b.YValues) {
		return fmt.Errorf("bar series %q must have equal x and y value counts", b.Name)
	}
	if b.Width <= 0 {
		return fmt.Errorf("bar series %q must have a positive width", b.Name)
	}
	return nil
}

// Render draws the bars from the zero baseline, clamped to the visible range.
func (b barSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	style := b.Style.InheritFrom(defaults)
	half := b.Width / 2

	base := math.Max(0, yrange.GetMin())
	bottom := canvasBox.Bottom - yrange.Translate(base)

	r.SetFillColor(style.FillColor)
	r.SetStrokeColor(style.FillColor)
	r.SetStrokeWidth(0)

	for i, x := range b.XValues {
		left := canvasBox.Left + xrange.Translate(x-half)
		right := canvasBox.Left + xrange.Translate(x+half)
		if right <= left {
			right = left + 1
		}
		top := canvasBox.Bottom - yrange.Translate(b.YValues[i])

		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.Fill()
	}
}
