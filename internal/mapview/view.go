// Package mapview assembles what the browser map needs: the base tile layers,
// the earthquake overlay, the legend and the styled GeoJSON itself.
//
// A View is built once at startup and handed to whoever renders the page.
package mapview

import "github.com/couchcryptid/quake-map-service/internal/domain"

// TileLayer is a base map the user can switch to from the layer control.
type TileLayer struct {
	Name        string `json:"name"`
	URLTemplate string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
	Default     bool   `json:"default"`
}

// Overlay is a toggleable data layer fetched from the service.
type Overlay struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Visible  bool   `json:"visible"`
}

// Legend is the static color key drawn in a map corner.
type Legend struct {
	Title    string               `json:"title"`
	Position string               `json:"position"`
	Entries  []domain.LegendEntry `json:"entries"`
}

// View is the initial map state.
type View struct {
	Center                [2]float64  `json:"center"` // [lat, lon]
	Zoom                  int         `json:"zoom"`
	BaseLayers            []TileLayer `json:"baseLayers"`
	Overlays              []Overlay   `json:"overlays"`
	LayerControlCollapsed bool        `json:"layerControlCollapsed"`
	Legend                Legend      `json:"legend"`
}

// Options configures New. Zero BaseLayers means StandardBaseLayers.
type Options struct {
	CenterLat  float64
	CenterLon  float64
	Zoom       int
	BaseLayers []TileLayer
}

// EarthquakesEndpoint serves the styled feature collection.
const EarthquakesEndpoint = "/api/earthquakes"

// New builds the map view.
func New(opts Options) *View {
	layers := opts.BaseLayers
	if len(layers) == 0 {
		layers = StandardBaseLayers()
	}
	return &View{
		Center:     [2]float64{opts.CenterLat, opts.CenterLon},
		Zoom:       opts.Zoom,
		BaseLayers: layers,
		Overlays: []Overlay{
			{Name: "Earthquakes Marker", Endpoint: EarthquakesEndpoint, Visible: true},
		},
		LayerControlCollapsed: false,
		Legend: Legend{
			Title:    domain.LegendTitle,
			Position: "bottomright",
			Entries:  domain.Legend(),
		},
	}
}

// StandardBaseLayers returns the street and topographic tile layers; street is the default.
func StandardBaseLayers() []TileLayer {
	return []TileLayer{
		{
			Name:        "Street Map",
			URLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
			MaxZoom:     19,
			Default:     true,
		},
		{
			Name:        "Topographic Map",
			URLTemplate: "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
			Attribution: `Map data: &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors, ` +
				`<a href="http://viewfinderpanoramas.org">SRTM</a> | Map style: &copy; <a href="https://opentopomap.org">OpenTopoMap</a> ` +
				`(<a href="https://creativecommons.org/licenses/by-sa/3.0/">CC-BY-SA</a>)`,
			MaxZoom: 17,
		},
	}
}

// DefaultLayer returns the layer shown on first load.
func (v *View) DefaultLayer() TileLayer {
	for _, l := range v.BaseLayers {
		if l.Default {
			return l
		}
	}
	return v.BaseLayers[0]
}
