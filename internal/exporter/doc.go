// Package exporter writes flattened burial records as tables.
//
// This package contains three main components:
//
// Frame: a batch of rows sharing one header, the union of every row's columns
// in first-seen order.
//
// CSVWriter: header row plus one record per row, absent cells rendered as the
// configured missing value and floats at the configured precision.
//
// XLSXWriter: a single-sheet workbook with typed cells and a frozen header
// row, built with excelize.
//
// Example usage:
//
//	w, err := exporter.New(cfg.Export, logger)
//	if err != nil {
//		return err
//	}
//	frame := exporter.NewFrame(osteology.Frame(individuals...)...)
//	err = w.Write(ctx, out, frame)
package exporter
