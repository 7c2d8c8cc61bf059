package widget_test

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"halfmoon/widget-service/internal/providers"
	"halfmoon/widget-service/internal/widget"
)

var chartStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func point(offset time.Duration, temp float64, icon string) providers.ForecastPoint {
	return providers.ForecastPoint{Time: chartStart.Add(offset), Temperature: temp, Icon: icon, Description: "clear sky"}
}

func requireWellFormed(s *suite.Suite, markup string) {
	decoder := xml.NewDecoder(strings.NewReader(markup))
	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		s.Require().NoError(err, "markup is not well-formed XML")
	}
}

type CurrentWidgetTestSuite struct {
	suite.Suite
	current *providers.CurrentWeather
}

func (s *CurrentWidgetTestSuite) SetupTest() {
	s.current = &providers.CurrentWeather{
		Description: "clear sky",
		Icon:        "01d",
		Temperature: 20.0,
		Humidity:    40,
		WindSpeed:   3.1,
	}
}

func (s *CurrentWidgetTestSuite) TestLargeWidget() {
	html := widget.RenderCurrent(s.current, widget.SizeLarge)

	s.Contains(html, "20.0°")
	s.Contains(html, "https://openweathermap.org/img/wn/01d@2x.png")
	s.Contains(html, "width: 90px; height: 90px;")
	s.Contains(html, "font-size: 5em;")
	s.Contains(html, "font-size: 0.9em;")
	s.Contains(html, "clear sky")
}

func (s *CurrentWidgetTestSuite) TestSmallWidget() {
	html := widget.RenderCurrent(s.current, widget.SizeSmall)

	s.Contains(html, "20.0°")
	s.Contains(html, "width: 33px; height: 33px;")
	s.Contains(html, "font-size: 0.8em;")
	s.Contains(html, "font-size: 0.3em;")
}

func (s *CurrentWidgetTestSuite) TestTemperatureHasOneDecimal() {
	s.current.Temperature = 7.86
	s.Contains(widget.RenderCurrent(s.current, widget.SizeLarge), "7.9°")

	s.current.Temperature = -3
	s.Contains(widget.RenderCurrent(s.current, widget.SizeLarge), "-3.0°")
}

func (s *CurrentWidgetTestSuite) TestDescriptionIsEscaped() {
	s.current.Description = `<script>alert("x")</script>`

	html := widget.RenderCurrent(s.current, widget.SizeLarge)

	s.NotContains(html, "<script>")
	s.Contains(html, "&lt;script&gt;")
	requireWellFormed(&s.Suite, html)
}

func (s *CurrentWidgetTestSuite) TestParseSize() {
	s.Equal(widget.SizeLarge, widget.ParseSize(""))
	s.Equal(widget.SizeLarge, widget.ParseSize("large"))
	s.Equal(widget.SizeSmall, widget.ParseSize("small"))
	s.Equal(widget.SizeSmall, widget.ParseSize("LARGE"))
	s.Equal(widget.SizeSmall, widget.ParseSize("huge"))
}

func TestCurrentWidgetTestSuite(t *testing.T) {
	suite.Run(t, new(CurrentWidgetTestSuite))
}

type ForecastChartTestSuite struct {
	suite.Suite
}

func (s *ForecastChartTestSuite) TestEmptySeries() {
	s.Equal("", widget.RenderForecastChart(nil, time.UTC))
	s.Equal("", widget.RenderForecastChart([]providers.ForecastPoint{}, time.UTC))
}

func (s *ForecastChartTestSuite) TestSinglePoint() {
	svg := widget.RenderForecastChart([]providers.ForecastPoint{point(0, 20, "01d")}, time.UTC)

	s.NotEmpty(svg)
	s.NotContains(svg, "NaN")
	s.NotContains(svg, "Inf")
	s.Contains(svg, `points="35,140"`)
	s.Contains(svg, `xmlns="http://www.w3.org/2000/svg"`)
	s.Contains(svg, `width="300" height="180"`)
	requireWellFormed(&s.Suite, svg)
}

func (s *ForecastChartTestSuite) TestEqualTemperatures() {
	svg := widget.RenderForecastChart([]providers.ForecastPoint{
		point(0, 15, "01d"),
		point(3*time.Hour, 15, "02d"),
		point(6*time.Hour, 15, "03d"),
	}, time.UTC)

	s.NotContains(svg, "NaN")
	s.Contains(svg, `points="35,140 147.5,140 260,140"`)
	s.Equal(5+3, strings.Count(svg, "15°C"))
	requireWellFormed(&s.Suite, svg)
}

func (s *ForecastChartTestSuite) TestTwelveHourWindowIsInclusive() {
	series := []providers.ForecastPoint{
		point(0, 10, "01d"),
		point(3*time.Hour, 11, "01d"),
		point(6*time.Hour, 12, "01d"),
		point(9*time.Hour, 13, "01d"),
		point(12*time.Hour, 14, "01n"),
		point(15*time.Hour, 15, "01n"),
		point(18*time.Hour, 16, "01n"),
	}

	window := widget.ChartWindow(series)
	s.Len(window, 5)
	s.Equal(chartStart.Add(12*time.Hour), window[4].Time)

	svg := widget.RenderForecastChart(series, time.UTC)
	s.Equal(5, strings.Count(svg, "<g>"))
	s.Contains(svg, "01n@2x.png")
	s.NotContains(svg, ">15°C<")
	requireWellFormed(&s.Suite, svg)
}

func (s *ForecastChartTestSuite) TestYAxisSpansFlooredAndCeiledRange() {
	svg := widget.RenderForecastChart([]providers.ForecastPoint{
		point(0, 10.2, "01d"),
		point(3*time.Hour, 19.6, "01d"),
	}, time.UTC)

	label := func(y, text string) string {
		return `<text x="30" y="` + y + `" text-anchor="end" alignment-baseline="middle" style="font-size: 12px;">` + text + `</text>`
	}

	s.Contains(svg, label("140", "10°C"))
	s.Contains(svg, label("117.5", "13°C"))
	s.Contains(svg, label("95", "15°C"))
	s.Contains(svg, label("72.5", "18°C"))
	s.Contains(svg, label("50", "20°C"))
}

func (s *ForecastChartTestSuite) TestPointLabels() {
	svg := widget.RenderForecastChart([]providers.ForecastPoint{
		point(0, 10, "10d"),
		point(3*time.Hour, 20, "04n"),
	}, time.UTC)

	s.Contains(svg, `points="35,140 260,50"`)
	s.Contains(svg, `<image x="20" y="95" width="30" height="30" href="https://openweathermap.org/img/wn/10d@2x.png"/>`)
	s.Contains(svg, `<text x="260" y="45" text-anchor="middle" style="font-size: 12px;">20°C</text>`)
	s.Contains(svg, `<text x="35" y="160" text-anchor="middle" style="font-size: 12px;">12 PM</text>`)
	s.Contains(svg, `<text x="260" y="160" text-anchor="middle" style="font-size: 12px;">03 PM</text>`)
}

func (s *ForecastChartTestSuite) TestHourLabelsUseForecastTimezone() {
	tokyo := time.FixedZone("", 9*3600)

	svg := widget.RenderForecastChart([]providers.ForecastPoint{point(0, 20, "01n")}, tokyo)

	s.Contains(svg, ">09 PM<")
}

func TestForecastChartTestSuite(t *testing.T) {
	suite.Run(t, new(ForecastChartTestSuite))
}

type EmbedTestSuite struct {
	suite.Suite
}

func (s *EmbedTestSuite) TestEmbedCombinesWidgets() {
	embed := widget.RenderEmbed("<p>current</p>", "<svg></svg>")

	s.Contains(embed, "@font-face")
	s.Contains(embed, "/public/Folio-Std-Bold-Condensed.woff")
	s.Contains(embed, `<div class="current-weather"><p>current</p></div>`)
	s.Contains(embed, `<div class="forecast"><svg></svg></div>`)
	s.Less(strings.Index(embed, "current-weather\">"), strings.Index(embed, "forecast\">"))
}

func (s *EmbedTestSuite) TestDocument() {
	s.Equal(`<html><body style="margin: 0; padding: 0;"><b>x</b></body></html>`, widget.Document("<b>x</b>"))
}

func (s *EmbedTestSuite) TestArtworkPage() {
	page, err := widget.RenderArtworkPage(&providers.Artwork{
		ID:        436524,
		Title:     "Sunflowers <1887>",
		Artist:    "Vincent van Gogh",
		Date:      "1887",
		ImageURL:  "https://images.metmuseum.org/DT1947.jpg",
		ObjectURL: "https://www.metmuseum.org/art/collection/search/436524",
	})

	s.Require().NoError(err)
	s.Contains(page, `<img src="https://images.metmuseum.org/DT1947.jpg"`)
	s.Contains(page, "Sunflowers &lt;1887&gt;")
	s.Contains(page, "Vincent van Gogh")
	s.Contains(page, `href="https://www.metmuseum.org/art/collection/search/436524"`)
	s.NotContains(page, "<1887>")
}

func TestEmbedTestSuite(t *testing.T) {
	suite.Run(t, new(EmbedTestSuite))
}
