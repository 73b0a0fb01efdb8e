package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/mapview"
)

// phase tracks pass/fail for one group of checks.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// errValidation is returned when at least one phase failed; details are
// already printed.
var errValidation = errors.New("validation failed")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a styled GeoJSON file against the styling rules",
		Long: `Check a styled feature collection, as written by render or served by
/api/earthquakes: every marker style must match its magnitude and depth,
every feature needs a popup and a unique id, and the bbox must cover all points.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read styled collection: %w", err)
			}
			fc, err := geojson.UnmarshalFeatureCollection(data)
			if err != nil {
				return fmt.Errorf("parse styled collection: %w", err)
			}
			phases := validateCollection(fc)
			if !report(cmd.OutOrStdout(), phases, len(fc.Features)) {
				return errValidation
			}
			return nil
		},
	}
}

func validateCollection(fc *geojson.FeatureCollection) []*phase {
	styles := &phase{name: "Marker styles match magnitude and depth"}
	popups := &phase{name: "Every feature has a popup"}
	ids := &phase{name: "Feature ids are unique"}
	bbox := &phase{name: "Bounding box covers every point"}

	seen := make(map[string]bool, len(fc.Features))
	var bound orb.Bound
	if len(fc.BBox) > 0 {
		bound = fc.BBox.Bound()
	} else if len(fc.Features) > 0 {
		bbox.errorf("bbox missing")
	}

	for i, f := range fc.Features {
		id := f.Properties.MustString("id", fmt.Sprintf("#%d", i))
		if seen[id] {
			ids.errorf("%s: duplicate id", id)
		}
		seen[id] = true

		if f.Properties.MustString("popup", "") == "" {
			popups.errorf("%s: empty popup", id)
		}

		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			styles.errorf("%s: geometry is %T, want Point", id, f.Geometry)
			continue
		}
		if len(fc.BBox) > 0 && !bound.Contains(pt) {
			bbox.errorf("%s: %v outside bbox", id, pt)
		}

		mag, okMag := f.Properties["mag"].(float64)
		depth, okDepth := f.Properties["depth"].(float64)
		if !okMag || !okDepth {
			styles.errorf("%s: mag or depth missing", id)
			continue
		}
		got, err := markerStyle(f.Properties["style"])
		if err != nil {
			styles.errorf("%s: %v", id, err)
			continue
		}
		want := mapview.ClampStyle(domain.StyleForFeature(mag, depth))
		if got != want {
			styles.errorf("%s: style %+v, want %+v", id, got, want)
		}
	}

	return []*phase{styles, popups, ids, bbox}
}

func markerStyle(v any) (domain.MarkerStyle, error) {
	var s domain.MarkerStyle
	if v == nil {
		return s, errors.New("style missing")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("decode style: %w", err)
	}
	return s, nil
}

func report(w io.Writer, phases []*phase, features int) bool {
	fmt.Fprintln(w, "=== Styled Earthquake Validation ===")
	fmt.Fprintln(w)

	ok := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			ok = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}
	fmt.Fprintf(w, "\nFeatures: %d\n", features)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if ok {
		fmt.Fprintln(w, "\nAll validations passed.")
	} else {
		fmt.Fprintln(w, "\nValidation FAILED.")
	}
	return ok
}
