package osteology

import (
	"fmt"

	"bioarch/internal/summary"
	"bioarch/pkg/bilateral"
	"bioarch/pkg/category"
	"bioarch/pkg/contracts/row"
	apperrors "bioarch/pkg/errors"
)

// TraumaCategory is the kind of lesion recorded on a bone.
type TraumaCategory int

const (
	TraumaNotPresent TraumaCategory = iota
	TraumaPartialBone
	TraumaNormal
	TraumaInfection
	TraumaFracture
	TraumaUnhealedFracture
	TraumaCriba
	TraumaBluntForce
	TraumaSharpForce
	TraumaTreponation
	TraumaUnfused
	TraumaBonyGrowth
	TraumaFused
	TraumaOsteochondritisDissecans
)

// TraumaCategories describes the TraumaCategory category type. NA and N
// parse to NOT_PRESENT rather than to a missing value.
var TraumaCategories = category.MustSet("TraumaCategory", []category.Variant[TraumaCategory]{
	{Value: TraumaNotPresent, Name: "NOT_PRESENT", Rank: -1},
	{Value: TraumaPartialBone, Name: "PARTIAL_BONE", Rank: 0.5},
	{Value: TraumaNormal, Name: "NORMAL", Rank: 1},
	{Value: TraumaInfection, Name: "INFECTION", Rank: 2},
	{Value: TraumaFracture, Name: "FRACTURE", Rank: 3},
	{Value: TraumaUnhealedFracture, Name: "UNHEALED_FRACTURE", Rank: 4},
	{Value: TraumaCriba, Name: "CRIBA", Rank: 5},
	{Value: TraumaBluntForce, Name: "BLUNT_FORCE_TRAUMA", Rank: 6},
	{Value: TraumaSharpForce, Name: "SHARP_FORCE_TRAUMA", Rank: 7},
	{Value: TraumaTreponation, Name: "TREPONATION", Rank: 8},
	{Value: TraumaUnfused, Name: "UNFUSED", Rank: 9},
	{Value: TraumaBonyGrowth, Name: "BONY_GROWTH", Rank: 10},
	{Value: TraumaFused, Name: "FUSED", Rank: 11},
	{Value: TraumaOsteochondritisDissecans, Name: "OSTEOCHONDRITIS_DESSICANS", Rank: 12},
}, lexicon("TraumaCategory"))

// ParseTraumaCategory resolves a raw trauma code
func ParseTraumaCategory(raw interface{}) (*TraumaCategory, error) {
	return TraumaCategories.Parse(raw)
}

func (t TraumaCategory) String() string { return TraumaCategories.Name(t) }

// Rank returns the numeric rank
func (t TraumaCategory) Rank() float64 { return TraumaCategories.Rank(t) }

// IsLesion reports whether t records pathology rather than an intact,
// partial or missing bone.
func (t TraumaCategory) IsLesion() bool {
	switch t {
	case TraumaNotPresent, TraumaPartialBone, TraumaNormal:
		return false
	default:
		return true
	}
}

// Combine merges the two sides of a bone. NOT_PRESENT defers to the other
// side and equal sides agree; different lesions have no combination.
func (TraumaCategory) Combine(left, right TraumaCategory) (TraumaCategory, error) {
	switch {
	case left == TraumaNotPresent:
		return right, nil
	case right == TraumaNotPresent, left == right:
		return left, nil
	}
	return 0, apperrors.NewDomainValidationError("trauma",
		fmt.Sprintf("no combination of %s and %s", left, right), right.String())
}

// TraumaPair is the left and right trauma code of one bone.
type TraumaPair = bilateral.Pair[TraumaCategory]

// NewTraumaPair parses both sides of a bone.
func NewTraumaPair(left, right interface{}) (TraumaPair, error) {
	l, err := ParseTraumaCategory(left)
	if err != nil {
		return TraumaPair{}, err
	}
	r, err := ParseTraumaCategory(right)
	if err != nil {
		return TraumaPair{}, err
	}
	return bilateral.New(l, r)
}

// Trauma records lesions of the facial bones, the paired long bones and the
// trunk.
type Trauma struct {
	FacialBones *TraumaCategory

	Clavicle TraumaPair
	Scapula  TraumaPair
	Humerus  TraumaPair
	Ulna     TraumaPair
	Radius   TraumaPair
	Femur    TraumaPair
	Tibia    TraumaPair
	Fibula   TraumaPair

	Ribs      *TraumaCategory
	Vertebrae *TraumaCategory
}

// EmptyTrauma returns a record with every bone NOT_PRESENT.
func EmptyTrauma() Trauma {
	np := func() *TraumaCategory { v := TraumaNotPresent; return &v }
	pair := func() TraumaPair { p, _ := bilateral.New(np(), np()); return p }
	return Trauma{
		FacialBones: np(),
		Clavicle:    pair(),
		Scapula:     pair(),
		Humerus:     pair(),
		Ulna:        pair(),
		Radius:      pair(),
		Femur:       pair(),
		Tibia:       pair(),
		Fibula:      pair(),
		Ribs:        np(),
		Vertebrae:   np(),
	}
}

var traumaPairs = []struct {
	key string
	ref func(*Trauma) *TraumaPair
}{
	{"clavicle", func(t *Trauma) *TraumaPair { return &t.Clavicle }},
	{"scapula", func(t *Trauma) *TraumaPair { return &t.Scapula }},
	{"humerus", func(t *Trauma) *TraumaPair { return &t.Humerus }},
	{"ulna", func(t *Trauma) *TraumaPair { return &t.Ulna }},
	{"radius", func(t *Trauma) *TraumaPair { return &t.Radius }},
	{"femur", func(t *Trauma) *TraumaPair { return &t.Femur }},
	{"tibia", func(t *Trauma) *TraumaPair { return &t.Tibia }},
	{"fibula", func(t *Trauma) *TraumaPair { return &t.Fibula }},
}

var traumaSites = []struct {
	key string
	ref func(*Trauma) **TraumaCategory
}{
	{"facial_bones", func(t *Trauma) **TraumaCategory { return &t.FacialBones }},
	{"ribs", func(t *Trauma) **TraumaCategory { return &t.Ribs }},
	{"vertabrae", func(t *Trauma) **TraumaCategory { return &t.Vertebrae }},
}

// AverageFields averages two trauma records bone by bone.
func (Trauma) AverageFields() []bilateral.Field[Trauma] {
	fields := make([]bilateral.Field[Trauma], 0, len(traumaSites)+len(traumaPairs))
	for _, f := range traumaSites {
		fields = append(fields, bilateral.Optional(f.key, f.ref))
	}
	for _, f := range traumaPairs {
		fields = append(fields, bilateral.Value(f.key, f.ref))
	}
	return fields
}

// ToRow flattens the paired bones, then the unpaired ones, then all_count
// (number of bones with a lesion) and all_max (the highest ranked lesion).
func (t Trauma) ToRow() row.Row {
	var (
		r       row.Row
		lesions []row.Value
	)
	collect := func(v row.Value) {
		if v.IsAbsent() {
			return
		}
		if c, err := TraumaCategories.Parse(v.Label()); err == nil && c != nil && c.IsLesion() {
			lesions = append(lesions, v)
		}
	}

	for _, f := range traumaPairs {
		collect(setCategoryPair(&r, f.key, TraumaCategories, *f.ref(&t)))
	}
	for _, f := range traumaSites {
		v := *f.ref(&t)
		setCategory(&r, f.key, TraumaCategories, v)
		collect(categoryValue(TraumaCategories, v))
	}

	s := summary.Of(lesions)
	r.Set("all_count", row.Int(int64(s.Count)))
	r.Set("all_max", s.Max)
	return r
}
