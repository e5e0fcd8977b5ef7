// Package summary computes the per-group mean/max/min/count columns that
// row flattening appends after the detail columns.
package summary

import (
	"bioarch/pkg/contracts/row"
)

// Stats summarises the numeric view of a group of row values. Absent and
// non-numeric values are skipped.
type Stats struct {
	Mean  *float64
	Max   row.Value
	Min   row.Value
	Count int
}

// Of computes the statistics of values. Max and Min keep the original value,
// so a group of categories reports category labels.
func Of(values []row.Value) Stats {
	var (
		s      Stats
		sum    float64
		hi, lo float64
	)
	for _, v := range values {
		f, ok := v.Float()
		if !ok {
			continue
		}
		if s.Count == 0 || f > hi {
			hi = f
			s.Max = v
		}
		if s.Count == 0 || f < lo {
			lo = f
			s.Min = v
		}
		sum += f
		s.Count++
	}
	if s.Count > 0 {
		mean := sum / float64(s.Count)
		s.Mean = &mean
	}
	return s
}

// Write appends <name>_mean, <name>_max, <name>_min and <name>_count.
func Write(r *row.Row, name string, values []row.Value) {
	s := Of(values)
	r.Set(name+"_mean", row.OptFloat(s.Mean))
	r.Set(name+"_max", s.Max)
	r.Set(name+"_min", s.Min)
	r.Set(name+"_count", row.Int(int64(s.Count)))
}

// CountTrue counts the boolean values that are true.
func CountTrue(values []row.Value) int {
	n := 0
	for _, v := range values {
		if v.Kind() == row.KindBool && v.Interface() == true {
			n++
		}
	}
	return n
}
