package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bioarch/internal/config"
	"bioarch/pkg/contracts/row"
	apperrors "bioarch/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRows() []row.Row {
	var a row.Row
	a.Set("id", row.String("1"))
	a.Set("femur_max", row.Float(440.25))
	a.Set("knee_cat", row.Category("MILD", 1))
	a.Set("spear", row.Bool(true))

	var b row.Row
	b.Set("id", row.String("2"))
	b.Set("femur_max", row.Absent())
	b.Set("teeth", row.Int(28))
	return []row.Row{a, b}
}

func TestNewFrame(t *testing.T) {
	f := NewFrame(sampleRows()...)

	assert.Equal(t, []string{"id", "femur_max", "knee_cat", "spear", "teeth"}, f.Columns())
	assert.Equal(t, 2, f.Len())

	values := f.Values(1)
	require.Len(t, values, 5)
	assert.Equal(t, "2", values[0].Interface())
	assert.True(t, values[1].IsAbsent())
	assert.True(t, values[2].IsAbsent(), "missing column")
	assert.Equal(t, int64(28), values[4].Interface())

	empty := NewFrame()
	assert.Empty(t, empty.Columns())
	assert.Equal(t, 0, empty.Len())
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "csv", want: FormatCSV},
		{format: "CSV", want: FormatCSV},
		{format: "xlsx", want: FormatXLSX},
		{format: "parquet", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w, err := New(config.ExportConfig{Format: tt.format, SheetName: "s"}, discardLogger())
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrExport)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Format())
		})
	}
}

func TestCSVWriter_Write(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.ExportConfig
		expected [][]string
	}{
		{
			name: "defaults",
			cfg:  config.ExportConfig{FloatPrecision: -1},
			expected: [][]string{
				{"id", "femur_max", "knee_cat", "spear", "teeth"},
				{"1", "440.25", "MILD", "true", ""},
				{"2", "", "", "", "28"},
			},
		},
		{
			name: "missing value and precision",
			cfg:  config.ExportConfig{MissingValue: "NA", FloatPrecision: 1},
			expected: [][]string{
				{"id", "femur_max", "knee_cat", "spear", "teeth"},
				{"1", "440.2", "MILD", "true", "NA"},
				{"2", "NA", "NA", "NA", "28"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewCSVWriter(tt.cfg, discardLogger())
			require.NoError(t, w.Write(context.Background(), &buf, NewFrame(sampleRows()...)))

			records, err := csv.NewReader(&buf).ReadAll()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, records)
		})
	}
}

func TestCSVWriter_BOM(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(config.ExportConfig{FloatPrecision: -1, CSVBOM: true}, discardLogger())
	require.NoError(t, w.Write(context.Background(), &buf, NewFrame(sampleRows()...)))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
}

func TestCSVWriter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewCSVWriter(config.ExportConfig{FloatPrecision: -1}, discardLogger())
	err := w.Write(ctx, io.Discard, NewFrame(sampleRows()...))
	assert.ErrorIs(t, err, apperrors.ErrExport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestXLSXWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewXLSXWriter(config.ExportConfig{SheetName: "burials", FloatPrecision: -1}, discardLogger())
	require.NoError(t, w.Write(context.Background(), &buf, NewFrame(sampleRows()...)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"burials"}, f.GetSheetList())

	rows, err := f.GetRows("burials")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "femur_max", "knee_cat", "spear", "teeth"}, rows[0])
	assert.Equal(t, "440.25", rows[1][1])
	assert.Equal(t, "MILD", rows[1][2])
	assert.Equal(t, "28", rows[2][4])
	assert.Equal(t, "", rows[2][1])

	typ, err := f.GetCellType("burials", "D2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ)

	panes, err := f.GetPanes("burials")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}

func TestXLSXWriter_MissingValueAndPrecision(t *testing.T) {
	var buf bytes.Buffer
	w := NewXLSXWriter(config.ExportConfig{SheetName: "s", MissingValue: "NA", FloatPrecision: 0}, discardLogger())
	require.NoError(t, w.Write(context.Background(), &buf, NewFrame(sampleRows()...)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("s", "B2")
	require.NoError(t, err)
	assert.Equal(t, "440", v)

	v, err = f.GetCellValue("s", "B3")
	require.NoError(t, err)
	assert.Equal(t, "NA", v)
}
