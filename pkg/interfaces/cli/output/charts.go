package output

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/storecalc/pkg/application/dto"
)

const (
	chartFont      = "font-family: Inter, Arial, sans-serif;"
	axisColor      = "#64748b"
	gridColor      = "#f1f5f9"
	emptyRingColor = "#e2e8f0"
)

// BarChart renders the Revenue/Costs/Profit chart as SVG
type BarChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	BarWidth     int
	Ticks        int
}

// NewBarChart creates a bar chart with default dimensions
func NewBarChart() *BarChart {
	return &BarChart{
		Width:        480,
		Height:       260,
		MarginLeft:   64,
		MarginTop:    20,
		MarginRight:  16,
		MarginBottom: 32,
		BarWidth:     32,
		Ticks:        5,
	}
}

// GenerateSVG draws the chart. The y axis starts at zero and tick labels use
// the compact currency format.
func (bc *BarChart) GenerateSVG(chart dto.Chart, f *Formatter) string {
	var svg strings.Builder

	plotW := bc.Width - bc.MarginLeft - bc.MarginRight
	plotH := bc.Height - bc.MarginTop - bc.MarginBottom
	maxValue := chartMax(chart)

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="%s">`,
		bc.Width, bc.Height, bc.Width, bc.Height, html.EscapeString(chart.Title)))
	svg.WriteString(fmt.Sprintf(`<style>.tick { %s font-size: 11px; fill: %s; }</style>`, chartFont, axisColor))
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, bc.Width, bc.Height))

	// Grid and y axis ticks
	for i := 0; i <= bc.Ticks; i++ {
		value := maxValue * float64(i) / float64(bc.Ticks)
		y := float64(bc.MarginTop+plotH) - float64(plotH)*float64(i)/float64(bc.Ticks)
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="1"/>`,
			bc.MarginLeft, y, bc.MarginLeft+plotW, y, gridColor))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" class="tick" text-anchor="end" dominant-baseline="middle">%s</text>`,
			bc.MarginLeft-8, y, html.EscapeString(f.Currency(decimal.NewFromFloat(value), true))))
	}

	// Bars
	slot := float64(plotW) / float64(max(len(chart.Slices), 1))
	for i, s := range chart.Slices {
		value := math.Max(s.Value.InexactFloat64(), 0)
		h := float64(plotH) * value / maxValue
		x := float64(bc.MarginLeft) + slot*float64(i) + (slot-float64(bc.BarWidth))/2
		y := float64(bc.MarginTop+plotH) - h

		svg.WriteString(fmt.Sprintf(`<path d="%s" fill="%s"><title>%s: %s</title></path>`,
			topRoundedBar(x, y, float64(bc.BarWidth), h, 4), s.Color,
			html.EscapeString(s.Label), html.EscapeString(f.Currency(s.Value, false))))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" class="tick" text-anchor="middle">%s</text>`,
			x+float64(bc.BarWidth)/2, bc.Height-bc.MarginBottom/2+4, html.EscapeString(s.Label)))
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

// chartMax returns the largest slice value, or 1 for an empty chart
func chartMax(chart dto.Chart) float64 {
	maxValue := 0.0
	for _, s := range chart.Slices {
		maxValue = math.Max(maxValue, s.Value.InexactFloat64())
	}
	if maxValue <= 0 {
		return 1
	}
	return maxValue
}

// topRoundedBar draws a bar with rounded top corners only
func topRoundedBar(x, y, w, h, r float64) string {
	if h <= 0 {
		return fmt.Sprintf("M%.1f %.1f H%.1f Z", x, y, x+w)
	}
	r = math.Min(r, math.Min(h, w/2))
	return fmt.Sprintf("M%.1f %.1f V%.1f Q%.1f %.1f %.1f %.1f H%.1f Q%.1f %.1f %.1f %.1f V%.1f Z",
		x, y+h,
		y+r, x, y, x+r, y,
		x+w-r, x+w, y, x+w, y+r,
		y+h)
}

// DoughnutChart renders the cost distribution as SVG
type DoughnutChart struct {
	Width     int
	Height    int
	Radius    float64
	Cutout    float64
	LegendX   int
	LegendRow int
}

// NewDoughnutChart creates a doughnut chart with a 65% cutout and a legend on the right
func NewDoughnutChart() *DoughnutChart {
	return &DoughnutChart{
		Width:     480,
		Height:    260,
		Radius:    100,
		Cutout:    0.65,
		LegendX:   250,
		LegendRow: 24,
	}
}

// GenerateSVG draws each slice as a dashed stroke on a circle, starting at
// twelve o'clock and going clockwise.
func (dc *DoughnutChart) GenerateSVG(chart dto.Chart, f *Formatter) string {
	var svg strings.Builder

	cx, cy := dc.Radius+20, float64(dc.Height)/2
	thickness := dc.Radius * (1 - dc.Cutout)
	mid := dc.Radius - thickness/2
	circumference := 2 * math.Pi * mid

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="%s">`,
		dc.Width, dc.Height, dc.Width, dc.Height, html.EscapeString(chart.Title)))
	svg.WriteString(fmt.Sprintf(`<style>.legend { %s font-size: 11px; fill: %s; }</style>`, chartFont, axisColor))
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, dc.Width, dc.Height))

	if !chart.Total().IsPositive() {
		svg.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`,
			cx, cy, mid, emptyRingColor, thickness))
	}

	offset := 0.0
	for _, s := range chart.Slices {
		share := s.Share.InexactFloat64() / 100
		if share <= 0 {
			continue
		}
		length := share * circumference
		svg.WriteString(fmt.Sprintf(
			`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="%.1f" stroke-dasharray="%.3f %.3f" stroke-dashoffset="%.3f" transform="rotate(-90 %.1f %.1f)"><title>%s</title></circle>`,
			cx, cy, mid, s.Color, thickness, length, circumference-length, -offset, cx, cy,
			html.EscapeString(sliceCaption(s, f))))
		offset += length
	}

	for i, s := range chart.Slices {
		y := float64(dc.Height)/2 - float64(len(chart.Slices)*dc.LegendRow)/2 + float64(i*dc.LegendRow) + float64(dc.LegendRow)/2
		svg.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%.1f" r="5" fill="%s"/>`, dc.LegendX, y, s.Color))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" class="legend" dominant-baseline="middle">%s</text>`,
			dc.LegendX+12, y, html.EscapeString(sliceCaption(s, f))))
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

func sliceCaption(s dto.ChartSlice, f *Formatter) string {
	return fmt.Sprintf("%s: %s (%s%%)", s.Label, f.Currency(s.Value, false), s.Share.StringFixed(1))
}
