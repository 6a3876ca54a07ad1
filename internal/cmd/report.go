package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tahmidriaz/scrubdash/internal/config"
	"github.com/tahmidriaz/scrubdash/internal/fetcher"
	"github.com/tahmidriaz/scrubdash/internal/logging"
	"github.com/tahmidriaz/scrubdash/internal/model"
	"github.com/tahmidriaz/scrubdash/internal/output"
	"github.com/tahmidriaz/scrubdash/internal/refresh"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run one refresh cycle and print today's stats",
	Long: `Fetch the source document once, compute today's attendance statistics,
and print them to the terminal. Use --output json for piping.

Examples:
  scrubdash report --source attendance.csv --total 20
  scrubdash report --source attendance.csv --total 20 --output json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	jsonOut := strings.EqualFold(outputFmt, "json")
	logging.Setup(cfg.LogLevel, jsonOut)

	source, err := fetcher.New(cfg.Source, fetcher.Options{CredentialsFile: cfg.GoogleCredentials})
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	refresher := refresh.New(source, nil, refresh.Config{
		Interval:     cfg.RefreshInterval,
		FetchTimeout: cfg.FetchTimeout,
		TotalWorkers: cfg.TotalWorkers,
	})
	snap := refresher.Once(context.Background())

	var renderer output.Renderer
	if jsonOut {
		renderer = output.NewJSONRenderer()
	} else {
		renderer = output.NewTextRenderer()
	}
	if err := renderer.Render(snap); err != nil {
		return err
	}

	if snap.State == model.StateWaiting {
		return fmt.Errorf("no data: %s", snap.Error)
	}
	return nil
}
