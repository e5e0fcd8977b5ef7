package osteology

import (
	"bioarch/pkg/bilateral"
	"bioarch/pkg/contracts/row"
)

// AgeSexStature groups the age, sex and body-size section of a burial record.
type AgeSexStature struct {
	Sex      OsteologicalSex                     `json:"osteological_sex"`
	Age      EstimatedAge                        `json:"age"`
	Femur    bilateral.Pair[LongBoneMeasurement] `json:"-"`
	Humerus  bilateral.Pair[LongBoneMeasurement] `json:"-"`
	Tibia    bilateral.Pair[LongBoneMeasurement] `json:"-"`
	Stature  *float64                            `json:"stature"`
	BodyMass *float64                            `json:"body_mass"`
}

// NewAgeSexStature builds the section, parsing stature and body mass.
func NewAgeSexStature(sex OsteologicalSex, age EstimatedAge,
	femur, humerus, tibia bilateral.Pair[LongBoneMeasurement],
	stature, bodyMass string) (AgeSexStature, error) {
	s, err := ParseMeasurement(stature)
	if err != nil {
		return AgeSexStature{}, err
	}
	m, err := ParseMeasurement(bodyMass)
	if err != nil {
		return AgeSexStature{}, err
	}
	return AgeSexStature{
		Sex:      sex,
		Age:      age,
		Femur:    femur,
		Humerus:  humerus,
		Tibia:    tibia,
		Stature:  s,
		BodyMass: m,
	}, nil
}

// EmptyAgeSexStature returns a section with nothing recorded
func EmptyAgeSexStature() AgeSexStature {
	return AgeSexStature{
		Age:     EmptyEstimatedAge(),
		Femur:   EmptyLongBonePair(),
		Humerus: EmptyLongBonePair(),
		Tibia:   EmptyLongBonePair(),
	}
}

// ToRow flattens the section.
func (a AgeSexStature) ToRow() row.Row {
	var r row.Row
	r.Set("stature", row.OptFloat(a.Stature))
	r.Set("body_mass", row.OptFloat(a.BodyMass))
	setLongBonePair(&r, "femur", a.Femur)
	setLongBonePair(&r, "humerus", a.Humerus)
	setLongBonePair(&r, "tibia", a.Tibia)
	r.Merge("age_", a.Age.ToRow())
	r.Merge("osteological_sex_", a.Sex.ToRow())
	return r
}
