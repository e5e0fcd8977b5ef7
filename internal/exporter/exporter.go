package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"bioarch/internal/config"
	apperrors "bioarch/pkg/errors"
)

// Supported output formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Writer renders a frame to w.
type Writer interface {
	Write(ctx context.Context, w io.Writer, frame *Frame) error
	Format() string
}

// New returns the writer for the configured format.
func New(cfg config.ExportConfig, logger *slog.Logger) (Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "exporter"))

	switch strings.ToLower(cfg.Format) {
	case FormatCSV:
		return NewCSVWriter(cfg, logger), nil
	case FormatXLSX:
		return NewXLSXWriter(cfg, logger), nil
	default:
		return nil, apperrors.NewExportError(fmt.Sprintf("unsupported export format %q", cfg.Format), nil)
	}
}
