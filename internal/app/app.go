package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bioarch/internal/config"
	"bioarch/internal/exporter"
	"bioarch/internal/infrastructure"
	"bioarch/pkg/osteology"
)

// Application wires configuration, logging and the exporter.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Exporter exporter.Writer
}

// NewApplication loads configuration from the environment and builds the
// application with the process-wide logger.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return New(cfg, infrastructure.InitializeLogger(cfg.Logging))
}

// New builds an application from an explicit configuration. A nil logger
// uses the slog default.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	w, err := exporter.New(cfg.Export, logger)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:   cfg,
		Logger:   logger.With(slog.String("component", "app")),
		Exporter: w,
	}, nil
}

// Export flattens the individuals and writes them to w in the configured
// format. Every log line of the export carries the same batch id, which is
// also returned.
func (a *Application) Export(ctx context.Context, w io.Writer, individuals []osteology.Individual) (string, error) {
	batchID := uuid.NewString()
	ctx = infrastructure.WithBatchID(ctx, batchID)
	start := time.Now()

	a.Logger.InfoContext(ctx, "Export started",
		slog.String("format", a.Exporter.Format()),
		slog.Int("individuals", len(individuals)))

	frame := exporter.NewFrame(osteology.Frame(individuals...)...)
	if err := a.Exporter.Write(ctx, w, frame); err != nil {
		a.Logger.ErrorContext(ctx, "Export failed", slog.String("error", err.Error()))
		return batchID, err
	}

	a.Logger.InfoContext(ctx, "Export finished",
		slog.Int("columns", len(frame.Columns())),
		slog.Duration("duration", time.Since(start)))
	return batchID, nil
}
