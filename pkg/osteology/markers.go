package osteology

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"bioarch/internal/validation"
	"bioarch/pkg/category"
	apperrors "bioarch/pkg/errors"
)

// Offsets of the flagged scales in the single numeric encoding of a marker.
const (
	stressOffset       = 3.0
	ossificationOffset = 6.0
)

// EnthesialMarker scores a muscle attachment from 0 to 3 in steps of 0.5.
// Stress lesions and ossification exostoses are flagged and start at 0.5.
type EnthesialMarker struct {
	Value        float64 `json:"value" validate:"gte=0,lte=3,halfstep"`
	Stress       bool    `json:"stress"`
	Ossification bool    `json:"ossification"`
}

func init() {
	validation.RegisterStructRule(validateEnthesialMarker, EnthesialMarker{})
}

func validateEnthesialMarker(sl validator.StructLevel) {
	m := sl.Current().Interface().(EnthesialMarker)
	if m.Stress && m.Ossification {
		sl.ReportError(m.Ossification, "ossification", "Ossification", validation.TagExclusive, "stress")
		return
	}
	if (m.Stress || m.Ossification) && m.Value < 0.5 {
		sl.ReportError(m.Value, "value", "Value", validation.TagFlaggedMin, "0.5")
	}
}

// NewEnthesialMarker validates a score and its flags.
func NewEnthesialMarker(value float64, stress, ossification bool) (EnthesialMarker, error) {
	m := EnthesialMarker{Value: value, Stress: stress, Ossification: ossification}
	if err := validation.Struct(m); err != nil {
		return EnthesialMarker{}, err
	}
	return m, nil
}

// ParseEnthesialMarker reads a survey score. Strings may carry an "r" (plain),
// "s" (stress) or "oe" (ossification) prefix. The misspelt prefixes "0e",
// "eo", "o" and "e" are read as "oe" with a warning. Unprefixed numbers above
// 3 are decoded from the AsNum encoding.
func ParseEnthesialMarker(raw interface{}) (*EnthesialMarker, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case EnthesialMarker:
		m, err := NewEnthesialMarker(v.Value, v.Stress, v.Ossification)
		if err != nil {
			return nil, err
		}
		return &m, nil
	case *EnthesialMarker:
		if v == nil {
			return nil, nil
		}
		return ParseEnthesialMarker(*v)
	case string:
		return parseMarkerString(v)
	case int:
		return decodeMarker(float64(v))
	case int64:
		return decodeMarker(float64(v))
	case float32:
		return decodeMarker(float64(v))
	case float64:
		return decodeMarker(v)
	}
	return nil, apperrors.NewParseError("EnthesialMarker", raw)
}

var legacyOssificationPrefixes = []string{"0e", "eo", "o", "e"}

func parseMarkerString(raw string) (*EnthesialMarker, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "":
		return nil, apperrors.NewParseError("EnthesialMarker", raw)
	case "na", "none":
		return nil, nil
	}

	var stress, ossification, prefixed bool
	switch {
	case strings.HasPrefix(s, "r"):
		s, prefixed = s[1:], true
	case strings.HasPrefix(s, "s"):
		s, stress, prefixed = s[1:], true, true
	case strings.HasPrefix(s, "oe"):
		s, ossification, prefixed = s[2:], true, true
	default:
		for _, p := range legacyOssificationPrefixes {
			if strings.HasPrefix(s, p) {
				slog.Warn("misspelt enthesial marker prefix read as ossification",
					slog.String("raw", raw))
				s, ossification, prefixed = s[len(p):], true, true
				break
			}
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, apperrors.NewParseError("EnthesialMarker", raw)
	}
	if !prefixed {
		return decodeMarker(f)
	}
	m, err := NewEnthesialMarker(f, stress, ossification)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// decodeMarker inverts AsNum.
func decodeMarker(f float64) (*EnthesialMarker, error) {
	var (
		m   EnthesialMarker
		err error
	)
	switch {
	case f > ossificationOffset:
		m, err = NewEnthesialMarker(f-ossificationOffset, false, true)
	case f > stressOffset:
		m, err = NewEnthesialMarker(f-stressOffset, true, false)
	default:
		m, err = NewEnthesialMarker(f, false, false)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AsNum encodes the marker on one scale: plain scores 0-3, stress 3.5-6 and
// ossification 6.5-9.
func (m EnthesialMarker) AsNum() float64 {
	switch {
	case m.Ossification:
		return m.Value + ossificationOffset
	case m.Stress:
		return m.Value + stressOffset
	default:
		return m.Value
	}
}

// String renders the marker in survey notation, e.g. "s0.5" or "oe3".
func (m EnthesialMarker) String() string {
	prefix := ""
	switch {
	case m.Stress:
		prefix = "s"
	case m.Ossification:
		prefix = "oe"
	}
	return prefix + category.FormatRank(m.Value)
}

// GoString is used by %#v in test failures
func (m EnthesialMarker) GoString() string {
	return fmt.Sprintf("EnthesialMarker(%s)", m)
}

// Combine keeps the more severe side.
func (EnthesialMarker) Combine(left, right EnthesialMarker) (EnthesialMarker, error) {
	if right.AsNum() > left.AsNum() {
		return right, nil
	}
	return left, nil
}
