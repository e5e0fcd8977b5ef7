package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"bioarch/internal/config"
	"bioarch/pkg/contracts/row"
	apperrors "bioarch/pkg/errors"
)

// defaultSheet is the sheet excelize creates with a new workbook
const defaultSheet = "Sheet1"

// XLSXWriter renders a frame into a single-sheet workbook.
type XLSXWriter struct {
	sheet     string
	missing   string
	precision int
	logger    *slog.Logger
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(cfg config.ExportConfig, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = defaultSheet
	}
	return &XLSXWriter{
		sheet:     sheet,
		missing:   cfg.MissingValue,
		precision: cfg.FloatPrecision,
		logger:    logger,
	}
}

// Format returns "xlsx"
func (w *XLSXWriter) Format() string { return FormatXLSX }

// Write builds the workbook in memory and streams it to out. The header row
// is frozen.
func (w *XLSXWriter) Write(ctx context.Context, out io.Writer, frame *Frame) error {
	w.logger.InfoContext(ctx, "Writing workbook",
		slog.String("sheet", w.sheet),
		slog.Int("record_count", frame.Len()),
		slog.Int("column_count", len(frame.columns)))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.WarnContext(ctx, "failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	if w.sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, w.sheet); err != nil {
			return apperrors.NewExportError("failed to name sheet", err)
		}
	}

	header := make([]interface{}, len(frame.columns))
	for j, c := range frame.columns {
		header[j] = c
	}
	if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return apperrors.NewExportError("failed to write headers", err)
	}

	for i := 0; i < frame.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return apperrors.NewExportError("export cancelled", err)
		}
		cells := make([]interface{}, len(frame.columns))
		for j, v := range frame.Values(i) {
			cells[j] = w.cell(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewExportError(fmt.Sprintf("failed to address record %d", i), err)
		}
		if err := f.SetSheetRow(w.sheet, cell, &cells); err != nil {
			return apperrors.NewExportError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	if err := f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return apperrors.NewExportError("failed to freeze header", err)
	}

	if err := f.Write(out); err != nil {
		return apperrors.NewExportError("failed to write workbook", err)
	}
	return nil
}

// cell maps a row value to a typed spreadsheet cell.
func (w *XLSXWriter) cell(v row.Value) interface{} {
	switch v.Kind() {
	case row.KindAbsent:
		if w.missing == "" {
			return nil
		}
		return w.missing
	case row.KindFloat:
		f, _ := v.Float()
		if w.precision >= 0 {
			scale := math.Pow10(w.precision)
			f = math.Round(f*scale) / scale
		}
		return f
	case row.KindCategory:
		return v.Label()
	default:
		return v.Interface()
	}
}
