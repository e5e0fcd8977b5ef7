package exporter

import (
	"bioarch/pkg/contracts/row"
)

// Frame is a batch of rows exported under one header.
type Frame struct {
	columns []string
	rows    []row.Row
}

// NewFrame collects rows. The header is the union of their columns in
// first-seen order.
func NewFrame(rows ...row.Row) *Frame {
	f := &Frame{rows: rows}
	seen := make(map[string]bool)
	for _, r := range rows {
		r.Each(func(c string, _ row.Value) {
			if !seen[c] {
				seen[c] = true
				f.columns = append(f.columns, c)
			}
		})
	}
	return f
}

// Columns returns the header
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of rows
func (f *Frame) Len() int { return len(f.rows) }

// Values returns row i aligned to the header. Columns the row lacks are absent.
func (f *Frame) Values(i int) []row.Value {
	out := make([]row.Value, len(f.columns))
	for j, c := range f.columns {
		if v, ok := f.rows[i].Get(c); ok {
			out[j] = v
		}
	}
	return out
}
