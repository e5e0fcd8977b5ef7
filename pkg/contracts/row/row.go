// Package row defines the flat, ordered column mapping that every composite
// value object renders itself into for tabular consumers.
//
// # Overview
//
// A Row maps a column name to a scalar Value. Columns keep the order in which
// they were first set, so two rows produced by the same composite always list
// their columns identically. A Value is one of absent, boolean, integer, real,
// string or ordered-category label (a label with its numeric rank).
//
// # Usage
//
//	var r row.Row
//	r.Set("stature", row.OptFloat(stature))
//	r.Set("sex_cat", row.Category("MALE", 100))
//	r.Merge("ass_", other)
package row

import (
	"math"
	"strconv"
)

// Kind identifies which scalar a Value carries.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindCategory
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Value is an immutable scalar cell.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Absent returns the missing value
func Absent() Value { return Value{} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a real value
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value
func String(s string) Value { return Value{kind: KindString, s: s} }

// Category returns an ordered-category label carrying its rank.
func Category(label string, rank float64) Value {
	return Value{kind: KindCategory, s: label, f: rank}
}

// Number returns an Int when f is integral and a Float otherwise.
func Number(f float64) Value {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return Int(int64(f))
	}
	return Float(f)
}

// OptFloat returns Absent for nil and Float otherwise.
func OptFloat(p *float64) Value {
	if p == nil {
		return Absent()
	}
	return Float(*p)
}

// Kind returns the scalar kind
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is missing
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Label returns the text of a string or category value.
func (v Value) Label() string { return v.s }

// Rank returns the rank of a category value.
func (v Value) Rank() float64 { return v.f }

// Float returns the numeric view of the value used by summary statistics.
// Booleans count as 0 or 1 and categories contribute their rank.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindInt:
		return float64(v.i), true
	case KindFloat, KindCategory:
		return v.f, true
	default:
		return 0, false
	}
}

// Interface returns the Go value: nil, bool, int64, float64 or string.
// Categories return their label.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString, KindCategory:
		return v.s
	default:
		return nil
	}
}

// Format renders the value as cell text. Absent values render as missing and
// floats use the given precision (-1 for the shortest exact form).
func (v Value) Format(missing string, precision int) string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', precision, 64)
	case KindString, KindCategory:
		return v.s
	default:
		return missing
	}
}

// Row is an ordered mapping from column name to Value. The zero value is an empty row.
type Row struct {
	columns []string
	values  map[string]Value
}

// Set assigns a column, appending it when new and replacing it in place otherwise.
func (r *Row) Set(column string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = v
}

// Get returns the value of a column
func (r Row) Get(column string) (Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Has reports whether the column exists
func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Columns returns the column names in order.
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns
func (r Row) Len() int { return len(r.columns) }

// Merge appends every column of other, prefixed.
func (r *Row) Merge(prefix string, other Row) {
	for _, c := range other.columns {
		r.Set(prefix+c, other.values[c])
	}
}

// Each visits the columns in order.
func (r Row) Each(fn func(column string, v Value)) {
	for _, c := range r.columns {
		fn(c, r.values[c])
	}
}

// Map returns the row as plain Go values, losing column order.
func (r Row) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(r.columns))
	for _, c := range r.columns {
		out[c] = r.values[c].Interface()
	}
	return out
}
