// Package cmd provides the quakestyle CLI commands.
package cmd

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree. Each call returns fresh flag state.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "quakestyle",
		Short: "Style USGS earthquake feeds for the map",
		Long: `quakestyle applies the earthquake map styling offline.

Examples:
  quakestyle style --magnitude 4.5 --depth 32
  quakestyle legend
  quakestyle render testdata/all_week.geojson > styled.geojson
  quakestyle render --url https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson
  quakestyle validate styled.geojson`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newStyleCmd(),
		newLegendCmd(),
		newRenderCmd(&verbose),
		newValidateCmd(),
	)
	return root
}

// cliLogger writes human-readable logs to stderr so stdout stays clean for output.
func cliLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{Level: level}))
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
