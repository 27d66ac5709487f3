// Package chart composes derived balance series into a single layered go-chart chart.
package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/fuzzgraph/internal/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	Title  = "Balances Over Time"
	XLabel = "Round"
	YLabel = "Balance (ETH)"

	DefaultWidth  = 1200
	DefaultHeight = 600

	// bar width in rounds
	rewardBarWidth = 0.4
	rangePadRatio  = 0.05
)

// Format is an output encoding for Render.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat parses png or svg.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatSVG {
		return gochart.SVG
	}
	return gochart.PNG
}

var (
	colorContract          = drawing.ColorFromHex("0000ff")
	colorTotal             = drawing.ColorFromHex("008000")
	colorAverage           = drawing.ColorFromHex("ffff00")
	colorCumulativeRewards = drawing.ColorFromHex("ff0000")
	colorReward            = drawing.ColorFromHex("800080").WithAlpha(128)
	colorGrid              = drawing.ColorFromHex("808080")

	// per-address line colors, cycled
	addressPalette = []drawing.Color{
		drawing.ColorFromHex("1f77b4"),
		drawing.ColorFromHex("ff7f0e"),
		drawing.ColorFromHex("2ca02c"),
		drawing.ColorFromHex("d62728"),
		drawing.ColorFromHex("9467bd"),
		drawing.ColorFromHex("8c564b"),
		drawing.ColorFromHex("e377c2"),
		drawing.ColorFromHex("7f7f7f"),
		drawing.ColorFromHex("bcbd22"),
		drawing.ColorFromHex("17becf"),
	}

	dashed  = []float64{5, 5}
	dashDot = []float64{6, 3, 1, 3}
)

// Composer turns derived series into a go-chart chart.
type Composer struct {
	width  int
	height int
}

// NewComposer creates a composer producing charts of the given pixel size.
// Non-positive sizes fall back to the defaults.
func NewComposer(width, height int) *Composer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	return &Composer{width: width, height: height}
}

// Compose maps every enabled series to a chart layer, in drawing order.
func (c *Composer) Compose(data domain.ChartData) (gochart.Chart, error) {
	ordered := data.Ordered()
	if len(data.Addresses) == 0 || data.Contract.Len() == 0 {
		return gochart.Chart{}, &domain.EmptySeriesError{Reason: "no series to draw"}
	}

	layers := make([]gochart.Series, 0, len(ordered))
	addrIdx := 0
	for _, s := range ordered {
		if s.Role == domain.RoleReward {
			// no reward events means no bar layer and no legend entry
			if s.Len() == 0 {
				continue
			}
			layers = append(layers, barSeries{
				Name:    s.Name,
				Style:   gochart.Style{StrokeColor: colorReward, StrokeWidth: 6, FillColor: colorReward},
				Width:   rewardBarWidth,
				XValues: s.XValues(),
				YValues: s.YValues(),
			})
			continue
		}

		style := lineStyle(s.Role, addrIdx)
		if s.Role == domain.RoleAddress {
			addrIdx++
		}
		layers = append(layers, gochart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: s.XValues(),
			YValues: s.YValues(),
		})
	}

	xr, yr := dataRanges(ordered)
	// go-chart alternates major and minor lines between ticks; both get the same dashed style
	grid := gochart.Style{
		StrokeColor:     colorGrid,
		StrokeWidth:     0.5,
		StrokeDashArray: dashed,
	}

	ch := gochart.Chart{
		Title:      Title,
		Width:      c.width,
		Height:     c.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           XLabel,
			Range:          xr,
			ValueFormatter: roundFormatter,
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Name:           YLabel,
			Range:          yr,
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		Series: layers,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch, nil
}

// Render composes data and writes it to w in the given format.
// It can be called repeatedly on the same data.
func (c *Composer) Render(data domain.ChartData, format Format, w io.Writer) error {
	ch, err := c.Compose(data)
	if err != nil {
		return err
	}

	if err := ch.Render(format.provider(), w); err != nil {
		return errors.Wrap(err, "render chart")
	}

	return nil
}

func lineStyle(role domain.SeriesRole, addrIdx int) gochart.Style {
	switch role {
	case domain.RoleContract:
		return gochart.Style{StrokeColor: colorContract, StrokeWidth: 2}
	case domain.RoleTotal:
		return gochart.Style{StrokeColor: colorTotal, StrokeWidth: 2}
	case domain.RoleAverage:
		return gochart.Style{StrokeColor: colorAverage, StrokeWidth: 1, StrokeDashArray: dashed}
	case domain.RoleCumulativeRewards:
		return gochart.Style{StrokeColor: colorCumulativeRewards, StrokeWidth: 2, StrokeDashArray: dashDot}
	default:
		return gochart.Style{StrokeColor: addressPalette[addrIdx%len(addressPalette)], StrokeWidth: 1}
	}
}

// dataRanges computes axis ranges covering every point. Bars pull the y range down to zero
// and widen the x range by half a bar. Degenerate ranges are padded so the chart always renders.
func dataRanges(series []domain.Series) (*gochart.ContinuousRange, *gochart.ContinuousRange) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)

	for _, s := range series {
		for _, p := range s.Points {
			lo, hi := p.X, p.X
			if s.Role == domain.RoleReward {
				lo, hi = p.X-rewardBarWidth/2, p.X+rewardBarWidth/2
				minY = math.Min(minY, 0)
				maxY = math.Max(maxY, 0)
			}
			minX, maxX = math.Min(minX, lo), math.Max(maxX, hi)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	minX, maxX = pad(minX, maxX, 0.5)
	minY, maxY = pad(minY, maxY, 1)
	yPad := (maxY - minY) * rangePadRatio

	return &gochart.ContinuousRange{Min: minX, Max: maxX},
		&gochart.ContinuousRange{Min: minY - yPad, Max: maxY + yPad}
}

func pad(lo, hi, fallback float64) (float64, float64) {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, fallback
	}
	if hi > lo {
		return lo, hi
	}
	delta := math.Abs(lo) * rangePadRatio
	if delta == 0 {
		delta = fallback
	}
	return lo - delta, hi + delta
}

func roundFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
