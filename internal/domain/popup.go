package domain

import (
	"html"
	"strconv"
	"strings"
	"time"
)

// PopupHTML renders the marker popup: place, magnitude, depth, origin time and,
// when region is non-empty, the reverse-geocoded region.
func PopupHTML(f EarthquakeFeature, region string) string {
	var b strings.Builder
	b.WriteString("<h1>")
	b.WriteString(html.EscapeString(f.Place))
	b.WriteString("</h1><hr><h3>Magnitude: ")
	b.WriteString(strconv.FormatFloat(f.Magnitude, 'f', -1, 64))
	b.WriteString("</h3><hr><p>Depth: ")
	b.WriteString(strconv.FormatFloat(f.DepthKm, 'f', -1, 64))
	b.WriteString(" km</p>")
	if region != "" {
		b.WriteString("<p>Region: ")
		b.WriteString(html.EscapeString(region))
		b.WriteString("</p>")
	}
	b.WriteString("<p>")
	b.WriteString(f.Time().Format(time.RFC1123))
	b.WriteString("</p>")
	return b.String()
}
