// Package widget renders weather data into HTML and SVG fragments meant to be
// embedded on other pages.
package widget

import (
	"fmt"
	"html"
	"strconv"

	"halfmoon/widget-service/internal/providers"
)

type Size string

const (
	SizeLarge Size = "large"
	SizeSmall Size = "small"
)

// ParseSize maps a size query value to a Size. Anything but "" or "large"
// selects the compact variant.
func ParseSize(value string) Size {
	if value == "" || value == string(SizeLarge) {
		return SizeLarge
	}
	return SizeSmall
}

type sizeStyle struct {
	iconPx   int
	tempSize string
	descSize string
}

var sizeStyles = map[Size]sizeStyle{
	SizeLarge: {iconPx: 90, tempSize: "5em", descSize: "0.9em"},
	SizeSmall: {iconPx: 33, tempSize: "0.8em", descSize: "0.3em"},
}

const fontFamily = "'Folio Bold Condensed', sans-serif"

// IconURL is the OpenWeatherMap artwork for an icon code.
func IconURL(icon string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}

func FormatTemperature(celsius float64) string {
	return strconv.FormatFloat(celsius, 'f', 1, 64) + "°"
}

func RenderCurrent(current *providers.CurrentWeather, size Size) string {
	style, ok := sizeStyles[size]
	if !ok {
		style = sizeStyles[SizeSmall]
	}

	description := html.EscapeString(current.Description)

	return fmt.Sprintf(`<div class="w-richtext" style="font-family: %s; padding: 0; color: inherit;">`+
		`<div style="display: flex; gap: 20px; align-items: flex-end; margin-bottom: 5px;">`+
		`<div style="font-size: %s; line-height: 0.7; font-weight: bold; letter-spacing: -1px; margin-bottom: -5px;">%s</div>`+
		`<div style="text-align: center;">`+
		`<img src="%s" alt="%s" style="width: %dpx; height: %dpx; display: block; margin-bottom: -15px;"/>`+
		`<div style="font-size: %s; letter-spacing: 0.5px; text-transform: uppercase; color: #666;">%s</div>`+
		`</div></div></div>`,
		fontFamily,
		style.tempSize, FormatTemperature(current.Temperature),
		html.EscapeString(IconURL(current.Icon)), description, style.iconPx, style.iconPx,
		style.descSize, description,
	)
}
