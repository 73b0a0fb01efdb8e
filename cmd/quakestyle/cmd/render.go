package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/mapview"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
)

type renderOptions struct {
	url     string
	timeout time.Duration
	minMag  float64
}

func newRenderCmd(verbose *bool) *cobra.Command {
	var opts renderOptions

	c := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a USGS GeoJSON feed as styled GeoJSON",
		Long: `Read a USGS GeoJSON feed from a file or --url and write the styled
feature collection the map serves to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && opts.url != "" {
				return errors.New("pass either a file or --url, not both")
			}
			if len(args) == 0 && opts.url == "" {
				return errors.New("a feed file or --url is required")
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd, path, opts, *verbose)
		},
	}
	c.Flags().StringVar(&opts.url, "url", "", "fetch the feed from this URL instead of a file")
	c.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "feed fetch timeout")
	c.Flags().Float64Var(&opts.minMag, "min-magnitude", 0, "drop features below this magnitude")
	return c
}

func runRender(cmd *cobra.Command, path string, opts renderOptions, verbose bool) error {
	logger := cliLogger(cmd.ErrOrStderr(), verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var features []domain.EarthquakeFeature
	if opts.url != "" {
		client := usgs.NewClient(opts.url, opts.timeout, observability.NewUnregisteredMetrics(), logger)
		fetched, err := client.Fetch(ctx)
		if err != nil {
			return err
		}
		features = fetched
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read feed: %w", err)
		}
		feed, err := usgs.ParseFeed(data)
		if err != nil {
			return err
		}
		if feed.Skipped > 0 {
			logger.Warn("skipped unusable feed records", "count", feed.Skipped)
		}
		features = feed.Features
	}

	transformer := pipeline.NewTransformer(nil, logger)
	styled := make([]domain.StyledFeature, 0, len(features))
	for _, f := range features {
		sf, err := transformer.Transform(ctx, f)
		if err != nil {
			logger.Warn("skipping feature", "event_id", f.ID, "error", err)
			continue
		}
		styled = append(styled, sf)
	}
	logger.Debug("rendered feed", "features", len(styled))

	minMag := math.Inf(-1)
	if cmd.Flags().Changed("min-magnitude") {
		minMag = opts.minMag
	}
	fc := mapview.FeatureCollection(mapview.Filter(styled, minMag))
	return writeIndented(cmd.OutOrStdout(), fc)
}
