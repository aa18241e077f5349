package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"TrueArk/internal/domain/models"
	"TrueArk/internal/service/ephemeris"
	"TrueArk/internal/usecase"
	applogger "TrueArk/pkg/logger"
)

var (
	computeDatetime     string
	computeLat          float64
	computeLon          float64
	computeEphemerisURL string
	computeEphePath     string
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a natal chart and print it as JSON",
	Long: `Computes one natal chart from a UTC timestamp and coordinates and prints
the full chart (planets, angles, houses, metadata) to stdout as JSON.

Without --ephemeris-url the built-in reduced-precision backend is used.`,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVar(&computeDatetime, "datetime", "", "UTC timestamp, e.g. 1977-09-05T17:24:00Z (required)")
	computeCmd.Flags().Float64Var(&computeLat, "lat", 0, "geographic latitude in decimal degrees (required)")
	computeCmd.Flags().Float64Var(&computeLon, "lon", 0, "geographic longitude in decimal degrees (required)")
	computeCmd.Flags().StringVar(&computeEphemerisURL, "ephemeris-url", os.Getenv("EPHEMERIS_SERVICE_URL"), "Swiss Ephemeris sidecar URL")
	computeCmd.Flags().StringVar(&computeEphePath, "ephe-path", os.Getenv("EPHEMERIS_PATH"), "ephemeris data path forwarded to the sidecar")
	_ = computeCmd.MarkFlagRequired("datetime")
	_ = computeCmd.MarkFlagRequired("lat")
	_ = computeCmd.MarkFlagRequired("lon")
}

func runCompute(cmd *cobra.Command, _ []string) error {
	l, err := applogger.New(&applogger.Config{Level: "warn", Format: "console", Output: "stderr"})
	if err != nil {
		return err
	}

	eph := ephemeris.New(ephemeris.Config{
		ServiceURL: computeEphemerisURL,
		EphePath:   computeEphePath,
	}, l)
	engine := usecase.NewChartEngine(eph, nil, l)

	out, err := engine.Compute(context.Background(), models.ChartInput{
		DatetimeUTC: computeDatetime,
		Latitude:    computeLat,
		Longitude:   computeLon,
	})
	if err != nil {
		return fmt.Errorf("compute chart: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
