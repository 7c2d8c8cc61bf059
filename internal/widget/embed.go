package widget

const embedStyle = `<style>` +
	`@font-face { font-family: 'Folio Bold Condensed'; src: url('/public/Folio-Std-Bold-Condensed.woff') format('woff'); font-weight: bold; font-style: normal; }` +
	`.weather-container { display: flex; flex-direction: column; gap: 10px; font-family: 'Folio Bold Condensed', sans-serif; }` +
	`.current-weather { text-align: left; }` +
	`.forecast { margin-top: -20px; }` +
	`</style>`

// RenderEmbed combines the current conditions and the forecast chart into a
// self-contained fragment, font included.
func RenderEmbed(currentWidget, forecastWidget string) string {
	return embedStyle +
		`<div class="weather-container">` +
		`<div class="current-weather">` + currentWidget + `</div>` +
		`<div class="forecast">` + forecastWidget + `</div>` +
		`</div>`
}

// Document wraps an embed fragment for iframe use.
func Document(embed string) string {
	return `<html><body style="margin: 0; padding: 0;">` + embed + `</body></html>`
}
