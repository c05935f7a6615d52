package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/jonathan/transcript-scorer/internal/observability"
	"github.com/jonathan/transcript-scorer/internal/server"
	"github.com/jonathan/transcript-scorer/internal/server/ratelimit"
)

var (
	servePort       int
	serveRubricPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /score, GET /health and GET /metrics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT, default 8080)")
	serveCmd.Flags().StringVar(&serveRubricPath, "rubric", "", "Path to a rubric YAML file (overrides RUBRIC_PATH)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	shutdown, err := observability.InitProvider(ctx, observability.ProviderConfig{
		ServiceName:    "transcript-scorer",
		ServiceVersion: version,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()

	metrics, err := observability.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	a, err := newApp(ctx, serveRubricPath, metrics)
	if err != nil {
		return err
	}
	defer a.Close()

	port := a.cfg.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.New(a.scorer, server.Config{
		Port:      port,
		RateLimit: ratelimit.NewConfig(a.cfg.RateLimit),
		Logger:    a.logger,
		Metrics:   metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	a.logger.Info("starting server",
		zap.Int("port", port),
		zap.String("version", version),
		zap.Int("rubric_version", a.rubric.Version),
	)
	return srv.Start()
}
