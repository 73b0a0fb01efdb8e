package cmd

import (
	"errors"
	"math"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

func newStyleCmd() *cobra.Command {
	var magnitude, depth float64

	c := &cobra.Command{
		Use:   "style",
		Short: "Print the marker style for a magnitude and depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isFinite(magnitude) || !isFinite(depth) {
				return errors.New("magnitude and depth must be finite")
			}
			return writeIndented(cmd.OutOrStdout(), domain.StyleForFeature(magnitude, depth))
		},
	}
	c.Flags().Float64VarP(&magnitude, "magnitude", "m", 0, "event magnitude")
	c.Flags().Float64VarP(&depth, "depth", "d", 0, "hypocenter depth in km")
	_ = c.MarkFlagRequired("magnitude")
	_ = c.MarkFlagRequired("depth")
	return c
}

func newLegendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Print the magnitude legend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeIndented(cmd.OutOrStdout(), struct {
				Title   string               `json:"title"`
				Entries []domain.LegendEntry `json:"entries"`
			}{domain.LegendTitle, domain.Legend()})
		},
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
