package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"bioarch/internal/config"
	apperrors "bioarch/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	missing   string
	precision int
	bom       bool
	logger    *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(cfg config.ExportConfig, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		missing:   cfg.MissingValue,
		precision: cfg.FloatPrecision,
		bom:       cfg.CSVBOM,
		logger:    logger,
	}
}

// Format returns "csv"
func (w *CSVWriter) Format() string { return FormatCSV }

// Write writes the header and one record per row.
func (w *CSVWriter) Write(ctx context.Context, out io.Writer, frame *Frame) error {
	w.logger.InfoContext(ctx, "Writing CSV",
		slog.Int("record_count", frame.Len()),
		slog.Int("column_count", len(frame.columns)))

	if w.bom {
		if _, err := out.Write(utf8BOM); err != nil {
			return apperrors.NewExportError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(frame.Columns()); err != nil {
		return apperrors.NewExportError("failed to write headers", err)
	}

	record := make([]string, len(frame.columns))
	for i := 0; i < frame.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return apperrors.NewExportError("export cancelled", err)
		}
		for j, v := range frame.Values(i) {
			record[j] = v.Format(w.missing, w.precision)
		}
		if err := writer.Write(record); err != nil {
			return apperrors.NewExportError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewExportError("failed to flush CSV", err)
	}
	return nil
}
