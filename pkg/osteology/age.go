package osteology

import (
	"fmt"
	"strconv"
	"strings"

	"bioarch/pkg/category"
	"bioarch/pkg/contracts/row"
	apperrors "bioarch/pkg/errors"
)

// MaxAge closes open-ended age ranges such as "60+".
const MaxAge = 100

// AgeCategory is a broad age-at-death class.
type AgeCategory int

const (
	AgeUnknown AgeCategory = iota
	AgeYoung
	AgeYoungAdult
	AgeAdult
	AgeMiddle
	AgeMiddleOld
	AgeOld
)

// AgeCategories describes the AgeCategory category type.
var AgeCategories = category.MustSet("AgeCategory", []category.Variant[AgeCategory]{
	{Value: AgeUnknown, Name: "UNKNOWN", Rank: 0},
	{Value: AgeYoung, Name: "YOUNG", Rank: 1},
	{Value: AgeYoungAdult, Name: "YOUNG_ADULT", Rank: 2},
	{Value: AgeAdult, Name: "ADULT", Rank: 3},
	{Value: AgeMiddle, Name: "MIDDLE", Rank: 4},
	{Value: AgeMiddleOld, Name: "MIDDLE_OLD", Rank: 5},
	{Value: AgeOld, Name: "OLD", Rank: 6},
}, lexicon("AgeCategory"))

// ParseAgeCategory resolves a raw age class
func ParseAgeCategory(raw interface{}) (*AgeCategory, error) {
	return AgeCategories.Parse(raw)
}

func (a AgeCategory) String() string { return AgeCategories.Name(a) }

// Rank returns the numeric rank
func (a AgeCategory) Rank() float64 { return AgeCategories.Rank(a) }

// Quad folds the transitional classes into the four-class scheme:
// YOUNG_ADULT becomes YOUNG and MIDDLE_OLD becomes MIDDLE.
func (a AgeCategory) Quad() AgeCategory {
	switch a {
	case AgeYoungAdult:
		return AgeYoung
	case AgeMiddleOld:
		return AgeMiddle
	default:
		return a
	}
}

// AgeRange is a half-open range of ages in years, [Start, End).
type AgeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String renders the range as start-end
func (r AgeRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Contains reports whether age falls in the range
func (r AgeRange) Contains(age int) bool {
	return age >= r.Start && age < r.End
}

// ParseAgeRange accepts "a-b", "a+" (up to MaxAge) and "=a". Empty strings,
// "None", "NA", "?" and "UNKNOWN" mean no range.
func ParseAgeRange(raw string) (*AgeRange, error) {
	s := strings.TrimSpace(raw)
	switch strings.ToUpper(s) {
	case "", "NONE", "NA", "?", "UNKNOWN":
		return nil, nil
	}

	var (
		r   AgeRange
		err error
	)
	switch {
	case strings.HasPrefix(s, "="):
		if r.Start, err = strconv.Atoi(strings.TrimSpace(s[1:])); err != nil {
			return nil, apperrors.NewParseError("AgeRange", raw)
		}
		r.End = r.Start + 1
	case strings.HasSuffix(s, "+"):
		if r.Start, err = strconv.Atoi(strings.TrimSpace(s[:len(s)-1])); err != nil {
			return nil, apperrors.NewParseError("AgeRange", raw)
		}
		r.End = MaxAge
	case strings.Contains(s, "-"):
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return nil, apperrors.NewParseError("AgeRange", raw)
		}
		if r.Start, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
			return nil, apperrors.NewParseError("AgeRange", raw)
		}
		if r.End, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return nil, apperrors.NewParseError("AgeRange", raw)
		}
	default:
		return nil, apperrors.NewParseError("AgeRange", raw)
	}

	if r.Start < 0 || r.Start >= r.End {
		return nil, apperrors.NewDomainValidationError("ranged", "age range must be non-empty and start at zero or later", raw)
	}
	return &r, nil
}

// EstimatedAge pairs an age class with an optional age range.
type EstimatedAge struct {
	Category *AgeCategory `json:"category"`
	Range    *AgeRange    `json:"ranged"`
}

// NewEstimatedAge parses an age class and an age range.
func NewEstimatedAge(cat interface{}, ranged string) (EstimatedAge, error) {
	c, err := ParseAgeCategory(cat)
	if err != nil {
		return EstimatedAge{}, err
	}
	r, err := ParseAgeRange(ranged)
	if err != nil {
		return EstimatedAge{}, err
	}
	return EstimatedAge{Category: c, Range: r}, nil
}

// EmptyEstimatedAge returns an UNKNOWN age without a range
func EmptyEstimatedAge() EstimatedAge {
	c := AgeUnknown
	return EstimatedAge{Category: &c}
}

// ToRow flattens the estimate. The range is exported as its label and bounds.
func (e EstimatedAge) ToRow() row.Row {
	var r row.Row
	setCategory(&r, "category", AgeCategories, e.Category)

	var quad *AgeCategory
	if e.Category != nil {
		q := e.Category.Quad()
		quad = &q
	}
	setCategory(&r, "category_quad", AgeCategories, quad)

	if e.Range == nil {
		r.Set("ranged", row.Absent())
		r.Set("ranged_start", row.Absent())
		r.Set("ranged_end", row.Absent())
	} else {
		r.Set("ranged", row.String(e.Range.String()))
		r.Set("ranged_start", row.Int(int64(e.Range.Start)))
		r.Set("ranged_end", row.Int(int64(e.Range.End)))
	}
	return r
}
