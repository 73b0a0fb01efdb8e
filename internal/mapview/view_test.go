package mapview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	v := New(Options{CenterLat: 37.09, CenterLon: -95.71, Zoom: 4})

	assert.Equal(t, [2]float64{37.09, -95.71}, v.Center)
	assert.Equal(t, 4, v.Zoom)
	require.Len(t, v.BaseLayers, 2)
	assert.Equal(t, "Street Map", v.BaseLayers[0].Name)
	assert.Equal(t, "Topographic Map", v.BaseLayers[1].Name)
	assert.Equal(t, "Street Map", v.DefaultLayer().Name)
	assert.False(t, v.LayerControlCollapsed)

	require.Len(t, v.Overlays, 1)
	assert.Equal(t, "Earthquakes Marker", v.Overlays[0].Name)
	assert.Equal(t, EarthquakesEndpoint, v.Overlays[0].Endpoint)
	assert.True(t, v.Overlays[0].Visible)

	assert.Equal(t, "Magnitude", v.Legend.Title)
	assert.Equal(t, "bottomright", v.Legend.Position)
	assert.Equal(t, domain.Legend(), v.Legend.Entries)
}

func TestNew_CustomLayers(t *testing.T) {
	custom := []TileLayer{
		{Name: "Dark", URLTemplate: "https://tiles.example/{z}/{x}/{y}.png"},
		{Name: "Light", URLTemplate: "https://light.example/{z}/{x}/{y}.png"},
	}
	v := New(Options{BaseLayers: custom})

	assert.Equal(t, custom, v.BaseLayers)
	assert.Equal(t, "Dark", v.DefaultLayer().Name, "first layer when none is marked default")
}

func TestView_JSON(t *testing.T) {
	v := New(Options{CenterLat: 37.09, CenterLon: -95.71, Zoom: 4})

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{37.09, -95.71}, decoded["center"])
	assert.Contains(t, decoded, "baseLayers")
	assert.Contains(t, decoded, "legend")
}
