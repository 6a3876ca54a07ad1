package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tahmidriaz/scrubdash/internal/config"
	"github.com/tahmidriaz/scrubdash/internal/fetcher"
	"github.com/tahmidriaz/scrubdash/internal/hub"
	"github.com/tahmidriaz/scrubdash/internal/logging"
	"github.com/tahmidriaz/scrubdash/internal/refresh"
	"github.com/tahmidriaz/scrubdash/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the live attendance dashboard",
	Long: `Serve the web dashboard and refresh the attendance statistics on the
configured interval. The source document is re-fetched and re-parsed in
full on every cycle.

Examples:
  scrubdash serve --source /var/collector/attendance.csv --total 20
  scrubdash serve --source "https://intranet/attendance.csv" --total 20 --interval 1m
  scrubdash serve --source "gsheet://1KCnvCP/Sheet1!A:B" --credentials sa.json --total 20`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Setup(cfg.LogLevel, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nscrubdash shutting down gracefully...")
		cancel()
	}()

	source, err := fetcher.New(cfg.Source, fetcher.Options{CredentialsFile: cfg.GoogleCredentials})
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	h := hub.New()
	defer h.Close()

	refresher := refresh.New(source, h, refresh.Config{
		Interval:     cfg.RefreshInterval,
		FetchTimeout: cfg.FetchTimeout,
		TotalWorkers: cfg.TotalWorkers,
	})
	go refresher.Run(ctx)

	slog.Info("scrubdash serving",
		"listen", cfg.Listen,
		"source", source.Describe(),
		"interval", cfg.RefreshInterval,
		"total_workers", cfg.TotalWorkers)

	srv := server.New(h, source.Describe(), cfg.Listen)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
