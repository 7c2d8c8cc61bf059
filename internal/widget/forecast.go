package widget

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"time"

	"halfmoon/widget-service/internal/providers"
)

const (
	chartWidth  = 300
	chartHeight = 180

	paddingLeft   = 35
	paddingRight  = 40
	paddingTop    = 50
	paddingBottom = 40

	plotWidth  = chartWidth - paddingLeft - paddingRight
	plotHeight = chartHeight - paddingTop - paddingBottom

	chartWindow   = 12 * time.Hour
	iconSize      = 30
	yAxisSteps    = 4
	lineColor     = "#2196F3"
	labelFontSize = "12px"
)

// ChartWindow keeps the points within 12 hours of the first one, both ends
// inclusive.
func ChartWindow(points []providers.ForecastPoint) []providers.ForecastPoint {
	if len(points) == 0 {
		return nil
	}

	start := points[0].Time
	end := start.Add(chartWindow)

	window := make([]providers.ForecastPoint, 0, len(points))
	for _, p := range points {
		if p.Time.Before(start) || p.Time.After(end) {
			continue
		}
		window = append(window, p)
	}
	return window
}

// RenderForecastChart draws a temperature line chart over the first 12 hours
// of points. Hour labels use loc. It returns "" when there is nothing to draw.
func RenderForecastChart(points []providers.ForecastPoint, loc *time.Location) string {
	window := ChartWindow(points)
	if len(window) == 0 {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}

	low, high := window[0].Temperature, window[0].Temperature
	for _, p := range window[1:] {
		low = math.Min(low, p.Temperature)
		high = math.Max(high, p.Temperature)
	}
	minTemp := math.Floor(low)
	maxTemp := math.Ceil(high)
	tempRange := maxTemp - minTemp

	// Equal temperatures collapse the range; keep positions finite.
	scale := tempRange
	if scale == 0 {
		scale = 1
	}

	step := 0.0
	if len(window) > 1 {
		step = float64(plotWidth) / float64(len(window)-1)
	}

	xAt := func(i int) float64 {
		return paddingLeft + float64(i)*step
	}
	yAt := func(temp float64) float64 {
		return chartHeight - paddingBottom - (temp-minTemp)/scale*plotHeight
	}

	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" style="font-family: %s;">`,
		chartWidth, chartHeight, fontFamily)

	coords := make([]string, len(window))
	for i, p := range window {
		coords[i] = formatNumber(xAt(i)) + "," + formatNumber(yAt(p.Temperature))
	}
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"/>`,
		strings.Join(coords, " "), lineColor)

	for i, p := range window {
		x, y := xAt(i), yAt(p.Temperature)

		b.WriteString("<g>")
		fmt.Fprintf(&b, `<image x="%s" y="%s" width="%d" height="%d" href="%s"/>`,
			formatNumber(x-iconSize/2), formatNumber(y-45), iconSize, iconSize, html.EscapeString(IconURL(p.Icon)))
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" style="font-size: %s;">%s</text>`,
			formatNumber(x), formatNumber(chartHeight-paddingBottom/2.0), labelFontSize, p.Time.In(loc).Format("03 PM"))
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" style="font-size: %s;">%d°C</text>`,
			formatNumber(x), formatNumber(y-5), labelFontSize, roundHalfUp(p.Temperature))
		b.WriteString("</g>")
	}

	for i := 0; i <= yAxisSteps; i++ {
		temp := minTemp + tempRange*float64(i)/yAxisSteps
		y := chartHeight - paddingBottom - float64(i)*plotHeight/yAxisSteps
		fmt.Fprintf(&b, `<text x="%d" y="%s" text-anchor="end" alignment-baseline="middle" style="font-size: %s;">%d°C</text>`,
			paddingLeft-5, formatNumber(y), labelFontSize, roundHalfUp(temp))
	}

	b.WriteString("</svg>")
	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}
