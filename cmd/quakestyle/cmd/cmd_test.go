package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

const feedFixture = "../../../internal/adapter/usgs/testdata/feed.geojson"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStyleCommand(t *testing.T) {
	out, err := run(t, "style", "--magnitude", "4.0", "--depth", "10.0")
	require.NoError(t, err)

	var got domain.MarkerStyle
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 16.0, got.Radius)
	assert.Equal(t, "#FFEDA0", got.Color)
	assert.Equal(t, "#FFEDA0", got.FillColor)
	assert.True(t, got.Stroke)
}

func TestStyleCommand_RequiresFlags(t *testing.T) {
	_, err := run(t, "style", "--magnitude", "4.0")
	assert.Error(t, err)
}

func TestStyleCommand_RejectsNaN(t *testing.T) {
	_, err := run(t, "style", "--magnitude", "NaN", "--depth", "10")
	assert.Error(t, err)
}

func TestLegendCommand(t *testing.T) {
	out, err := run(t, "legend")
	require.NoError(t, err)

	var got struct {
		Title   string               `json:"title"`
		Entries []domain.LegendEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Magnitude", got.Title)
	assert.Equal(t, domain.Legend(), got.Entries)
}

func TestRenderCommand_File(t *testing.T) {
	out, err := run(t, "render", feedFixture)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "ci40123456", fc.Features[0].Properties.MustString("id"))
	assert.Len(t, fc.BBox, 4)
}

func TestRenderCommand_MinMagnitude(t *testing.T) {
	out, err := run(t, "render", "--min-magnitude", "3", feedFixture)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
}

func TestRenderCommand_URL(t *testing.T) {
	data, err := os.ReadFile(feedFixture)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	out, err := run(t, "render", "--url", srv.URL)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 3)
}

func TestRenderCommand_NeedsOneSource(t *testing.T) {
	_, err := run(t, "render")
	require.Error(t, err)

	_, err = run(t, "render", "--url", "http://example.invalid", feedFixture)
	require.Error(t, err)
}

func TestValidateCommand_RenderedOutputPasses(t *testing.T) {
	rendered, err := run(t, "render", feedFixture)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "styled.geojson")
	require.NoError(t, os.WriteFile(path, []byte(rendered), 0o600))

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "All validations passed.")
}

func TestValidateCommand_DetectsWrongColor(t *testing.T) {
	rendered, err := run(t, "render", feedFixture)
	require.NoError(t, err)
	// The Chile event is deep; repaint it as shallow.
	tampered := strings.Replace(rendered, `"#E31A1C"`, `"#FFEDA0"`, 1)
	require.NotEqual(t, rendered, tampered)
	path := filepath.Join(t.TempDir(), "styled.geojson")
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0o600))

	out, err := run(t, "validate", path)
	require.ErrorIs(t, err, errValidation)
	assert.Contains(t, out, "us7000m9g4")
	assert.Contains(t, out, "Validation FAILED.")
}
