package osteology

import (
	"bioarch/pkg/category"
	"bioarch/pkg/contracts/row"
)

// Sex is an osteological sex estimate ranked from 0 (female) to 100 (male).
type Sex int

const (
	SexFemale Sex = iota
	SexFemaleLikely
	SexFemaleAssumed
	SexUnknown
	SexMaleAssumed
	SexMaleLikely
	SexMale
)

// Sexes describes the Sex category type.
var Sexes = category.MustSet("Sex", []category.Variant[Sex]{
	{Value: SexFemale, Name: "FEMALE", Rank: 0},
	{Value: SexFemaleLikely, Name: "FEMALE_LIKELY", Rank: 10},
	{Value: SexFemaleAssumed, Name: "FEMALE_ASSUMED", Rank: 20},
	{Value: SexUnknown, Name: "UNKNOWN", Rank: 50},
	{Value: SexMaleAssumed, Name: "MALE_ASSUMED", Rank: 80},
	{Value: SexMaleLikely, Name: "MALE_LIKELY", Rank: 90},
	{Value: SexMale, Name: "MALE", Rank: 100},
}, lexicon("Sex"))

// ParseSex accepts names, ranks and the field shorthand M, M?, ?M, M??, ??M
// (and the F equivalents) where more question marks mean less certainty.
func ParseSex(raw interface{}) (*Sex, error) {
	return Sexes.Parse(raw)
}

func (s Sex) String() string { return Sexes.Name(s) }

// Rank returns the numeric rank
func (s Sex) Rank() float64 { return Sexes.Rank(s) }

// Binary collapses the estimate to MALE or FEMALE. UNKNOWN has no binary form.
func (s Sex) Binary() *Sex {
	switch {
	case s == SexUnknown:
		return nil
	case s.Rank() > Sexes.Rank(SexUnknown):
		v := SexMale
		return &v
	default:
		v := SexFemale
		return &v
	}
}

func binarySex(s *Sex) *Sex {
	if s == nil {
		return nil
	}
	return s.Binary()
}

// OsteologicalSex holds the sex estimates from the pelvis, the cranium and
// their combination.
type OsteologicalSex struct {
	Pelvic   *Sex `json:"pelvic"`
	Cranium  *Sex `json:"cranium"`
	Combined *Sex `json:"combined"`
}

// NewOsteologicalSex parses the three estimates.
func NewOsteologicalSex(pelvic, cranium, combined interface{}) (OsteologicalSex, error) {
	var (
		o   OsteologicalSex
		err error
	)
	if o.Pelvic, err = ParseSex(pelvic); err != nil {
		return OsteologicalSex{}, err
	}
	if o.Cranium, err = ParseSex(cranium); err != nil {
		return OsteologicalSex{}, err
	}
	if o.Combined, err = ParseSex(combined); err != nil {
		return OsteologicalSex{}, err
	}
	return o, nil
}

// ToRow flattens the estimates to <field>_cat, <field>_val, <field>_bin_cat and <field>_bin_val.
func (o OsteologicalSex) ToRow() row.Row {
	var r row.Row
	for _, f := range []struct {
		name  string
		value *Sex
	}{
		{"pelvic", o.Pelvic},
		{"cranium", o.Cranium},
		{"combined", o.Combined},
	} {
		setCategory(&r, f.name, Sexes, f.value)
		setCategory(&r, f.name+"_bin", Sexes, binarySex(f.value))
	}
	return r
}
