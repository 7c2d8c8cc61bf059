package widget

import (
	"bytes"
	"fmt"
	"html/template"

	"halfmoon/widget-service/internal/providers"
)

var artworkPage = template.Must(template.New("artwork").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
@font-face { font-family: 'Folio Bold Condensed'; src: url('/public/Folio-Std-Bold-Condensed.woff') format('woff'); font-weight: bold; font-style: normal; }
body { margin: 0; padding: 0; font-family: 'Folio Bold Condensed', sans-serif; }
figure { margin: 0; }
img { display: block; max-width: 100%; max-height: 90vh; margin: 0 auto; }
figcaption { padding: 10px; text-transform: uppercase; letter-spacing: 0.5px; color: #666; }
</style>
</head>
<body>
<figure>
<img src="{{.ImageURL}}" alt="{{.Title}}">
<figcaption>
{{if .ObjectURL}}<a href="{{.ObjectURL}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}{{if .Artist}}, {{.Artist}}{{end}}{{if .Date}} ({{.Date}}){{end}}
</figcaption>
</figure>
</body>
</html>
`))

// RenderArtworkPage renders a standalone page showing one artwork.
func RenderArtworkPage(art *providers.Artwork) (string, error) {
	var buf bytes.Buffer
	if err := artworkPage.Execute(&buf, art); err != nil {
		return "", fmt.Errorf("render artwork page: %w", err)
	}
	return buf.String(), nil
}
