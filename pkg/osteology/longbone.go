package osteology

import (
	"log/slog"
	"strconv"
	"strings"

	"bioarch/pkg/bilateral"
	"bioarch/pkg/contracts/row"
	apperrors "bioarch/pkg/errors"
)

// LongBoneMeasurement holds the standard measurements of one long bone in millimetres.
type LongBoneMeasurement struct {
	Max    *float64 `json:"max"`
	Bi     *float64 `json:"bi"`
	Head   *float64 `json:"head"`
	Distal *float64 `json:"distal"`
}

// EmptyLongBone returns a measurement with nothing recorded
func EmptyLongBone() LongBoneMeasurement {
	return LongBoneMeasurement{}
}

// EmptyLongBonePair returns a pair of empty measurements
func EmptyLongBonePair() bilateral.Pair[LongBoneMeasurement] {
	p, _ := bilateral.New(bilateral.Ptr(EmptyLongBone()), bilateral.Ptr(EmptyLongBone()))
	return p
}

// NewLongBoneMeasurement parses the four measurements.
func NewLongBoneMeasurement(maximum, bi, head, distal string) (LongBoneMeasurement, error) {
	var (
		m   LongBoneMeasurement
		err error
	)
	if m.Max, err = ParseMeasurement(maximum); err != nil {
		return LongBoneMeasurement{}, err
	}
	if m.Bi, err = ParseMeasurement(bi); err != nil {
		return LongBoneMeasurement{}, err
	}
	if m.Head, err = ParseMeasurement(head); err != nil {
		return LongBoneMeasurement{}, err
	}
	if m.Distal, err = ParseMeasurement(distal); err != nil {
		return LongBoneMeasurement{}, err
	}
	return m, nil
}

// AverageFields averages each measurement independently.
func (m LongBoneMeasurement) AverageFields() []bilateral.Field[LongBoneMeasurement] {
	return []bilateral.Field[LongBoneMeasurement]{
		bilateral.Optional("max", func(m *LongBoneMeasurement) **float64 { return &m.Max }),
		bilateral.Optional("bi", func(m *LongBoneMeasurement) **float64 { return &m.Bi }),
		bilateral.Optional("head", func(m *LongBoneMeasurement) **float64 { return &m.Head }),
		bilateral.Optional("distal", func(m *LongBoneMeasurement) **float64 { return &m.Distal }),
	}
}

// Equal compares measurement values rather than pointers.
func (m LongBoneMeasurement) Equal(o LongBoneMeasurement) bool {
	return equalFloat(m.Max, o.Max) && equalFloat(m.Bi, o.Bi) &&
		equalFloat(m.Head, o.Head) && equalFloat(m.Distal, o.Distal)
}

// ToRow flattens to max, bi, head and distal.
func (m LongBoneMeasurement) ToRow() row.Row {
	var r row.Row
	r.Set("max", row.OptFloat(m.Max))
	r.Set("bi", row.OptFloat(m.Bi))
	r.Set("head", row.OptFloat(m.Head))
	r.Set("distal", row.OptFloat(m.Distal))
	return r
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ParseMeasurement reads a measurement in millimetres. Empty strings,
// "None", "NA" and "?" mean not measured.
func ParseMeasurement(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	switch strings.ToUpper(s) {
	case "", "NONE", "NA", "?":
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil, apperrors.NewParseError("measurement", raw)
	}
	if f < 0 {
		return nil, apperrors.NewDomainValidationError("measurement", "must not be negative", raw)
	}
	return &f, nil
}

// setLongBonePair writes <key>_left_*, <key>_right_* and <key>_avg_*.
func setLongBonePair(r *row.Row, key string, p bilateral.Pair[LongBoneMeasurement]) {
	avg, err := p.Avg()
	if err != nil {
		slog.Debug("long bone sides have no common value",
			slog.String("column", key),
			slog.String("error", err.Error()))
		avg = nil
	}
	for _, side := range []struct {
		suffix string
		value  *LongBoneMeasurement
	}{
		{"_left_", p.Left()},
		{"_right_", p.Right()},
		{"_avg_", avg},
	} {
		m := EmptyLongBone()
		if side.value != nil {
			m = *side.value
		}
		r.Merge(key+side.suffix, m.ToRow())
	}
}
