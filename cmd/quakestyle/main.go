// Command quakestyle styles earthquake feeds offline: it prints marker styles
// and the legend, renders a USGS feed into the map's styled GeoJSON, and checks
// rendered output for consistency.
package main

import (
	"os"

	"github.com/couchcryptid/quake-map-service/cmd/quakestyle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
