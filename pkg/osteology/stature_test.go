package osteology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bioarch/pkg/bilateral"
	"bioarch/pkg/contracts/row"
	apperrors "bioarch/pkg/errors"
)

// cell returns the Go value of a column and fails when it is missing.
func cell(t *testing.T, r row.Row, column string) interface{} {
	t.Helper()
	v, ok := r.Get(column)
	require.True(t, ok, "missing column %s", column)
	return v.Interface()
}

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		raw      string
		expected *float64
		wantErr  bool
	}{
		{raw: "", expected: nil},
		{raw: "None", expected: nil},
		{raw: "NA", expected: nil},
		{raw: "?", expected: nil},
		{raw: "45", expected: ptr(45.0)},
		{raw: " 45.5 ", expected: ptr(45.5)},
		{raw: "45,5", expected: ptr(45.5)},
		{raw: "long", wantErr: true},
		{raw: "-3", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMeasurement(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.expected, got, tt.raw)
	}
}

func TestLongBoneMeasurement_PairAverage(t *testing.T) {
	left, err := NewLongBoneMeasurement("1.0", "", "1.0", "")
	require.NoError(t, err)
	right, err := NewLongBoneMeasurement("2.0", "2.0", "", "")
	require.NoError(t, err)

	p, err := bilateral.New(&left, &right)
	require.NoError(t, err)

	avg, err := p.Avg()
	require.NoError(t, err)
	assert.True(t, avg.Equal(LongBoneMeasurement{Max: ptr(1.5), Bi: ptr(2.0), Head: ptr(1.0)}), "%+v", avg)
}

func TestLongBoneMeasurement_EmptySideAbsorbs(t *testing.T) {
	right := LongBoneMeasurement{Max: ptr(400.0), Head: ptr(45.0)}
	p, err := bilateral.New(bilateral.Ptr(EmptyLongBone()), &right)
	require.NoError(t, err)

	avg, err := p.Avg()
	require.NoError(t, err)
	assert.True(t, avg.Equal(right))
}

func TestLongBoneMeasurement_DifferingInOneField(t *testing.T) {
	a := LongBoneMeasurement{Max: ptr(1.0), Bi: ptr(3.0), Head: ptr(4.0), Distal: ptr(5.0)}
	b := LongBoneMeasurement{Max: ptr(2.0), Bi: ptr(3.0), Head: ptr(4.0), Distal: ptr(5.0)}

	avg, err := bilateral.Average(&a, &b)
	require.NoError(t, err)
	assert.True(t, avg.Equal(LongBoneMeasurement{Max: ptr(1.5), Bi: ptr(3.0), Head: ptr(4.0), Distal: ptr(5.0)}))
}

func TestOsteologicalSex_ToRow(t *testing.T) {
	os, err := NewOsteologicalSex("M", nil, "M??")
	require.NoError(t, err)

	r := os.ToRow()
	assert.Equal(t, []string{
		"pelvic_cat", "pelvic_val", "pelvic_bin_cat", "pelvic_bin_val",
		"cranium_cat", "cranium_val", "cranium_bin_cat", "cranium_bin_val",
		"combined_cat", "combined_val", "combined_bin_cat", "combined_bin_val",
	}, r.Columns())

	assert.Equal(t, "MALE", cell(t, r, "pelvic_cat"))
	assert.Equal(t, int64(100), cell(t, r, "pelvic_val"))
	assert.Equal(t, "MALE", cell(t, r, "pelvic_bin_cat"))
	assert.Nil(t, cell(t, r, "cranium_cat"))
	assert.Nil(t, cell(t, r, "cranium_bin_val"))
	assert.Equal(t, "MALE_ASSUMED", cell(t, r, "combined_cat"))
	assert.Equal(t, int64(80), cell(t, r, "combined_val"))
	assert.Equal(t, "MALE", cell(t, r, "combined_bin_cat"))
	assert.Equal(t, int64(100), cell(t, r, "combined_bin_val"))

	_, err = NewOsteologicalSex("XYZ", nil, nil)
	assert.True(t, apperrors.IsParse(err))
}

func TestParseAgeRange(t *testing.T) {
	tests := []struct {
		raw      string
		expected *AgeRange
		parseErr bool
		rangeErr bool
	}{
		{raw: "", expected: nil},
		{raw: "None", expected: nil},
		{raw: "?", expected: nil},
		{raw: "unknown", expected: nil},
		{raw: "20-35", expected: &AgeRange{Start: 20, End: 35}},
		{raw: " 20 - 35 ", expected: &AgeRange{Start: 20, End: 35}},
		{raw: "60+", expected: &AgeRange{Start: 60, End: MaxAge}},
		{raw: "=40", expected: &AgeRange{Start: 40, End: 41}},
		{raw: "adult", parseErr: true},
		{raw: "1-2-3", parseErr: true},
		{raw: "35-20", rangeErr: true},
		{raw: "20-20", rangeErr: true},
		{raw: "120+", rangeErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAgeRange(tt.raw)
		switch {
		case tt.parseErr:
			assert.True(t, apperrors.IsParse(err), tt.raw)
		case tt.rangeErr:
			assert.True(t, apperrors.IsDomainValidation(err), tt.raw)
		default:
			require.NoError(t, err, tt.raw)
			assert.Equal(t, tt.expected, got, tt.raw)
		}
	}
}

func TestAgeRange_Contains(t *testing.T) {
	r := AgeRange{Start: 20, End: 35}
	assert.True(t, r.Contains(20))
	assert.True(t, r.Contains(34))
	assert.False(t, r.Contains(35))
	assert.Equal(t, "20-35", r.String())
}

func TestEstimatedAge_ToRow(t *testing.T) {
	age, err := NewEstimatedAge("MIDDLE/OLD", "40-60")
	require.NoError(t, err)

	r := age.ToRow()
	assert.Equal(t, []string{
		"category_cat", "category_val", "category_quad_cat", "category_quad_val",
		"ranged", "ranged_start", "ranged_end",
	}, r.Columns())
	assert.Equal(t, "MIDDLE_OLD", cell(t, r, "category_cat"))
	assert.Equal(t, int64(5), cell(t, r, "category_val"))
	assert.Equal(t, "MIDDLE", cell(t, r, "category_quad_cat"))
	assert.Equal(t, int64(4), cell(t, r, "category_quad_val"))
	assert.Equal(t, "40-60", cell(t, r, "ranged"))
	assert.Equal(t, int64(40), cell(t, r, "ranged_start"))
	assert.Equal(t, int64(60), cell(t, r, "ranged_end"))

	empty := EmptyEstimatedAge().ToRow()
	assert.Equal(t, "UNKNOWN", cell(t, empty, "category_cat"))
	assert.Nil(t, cell(t, empty, "ranged"))
}

func TestAgeSexStature_ToRow(t *testing.T) {
	os, err := NewOsteologicalSex(SexMale, nil, SexMaleAssumed)
	require.NoError(t, err)

	femurLeft := LongBoneMeasurement{Max: ptr(440.0)}
	femurRight := LongBoneMeasurement{Max: ptr(450.0), Head: ptr(46.0)}
	femur, err := bilateral.New(&femurLeft, &femurRight)
	require.NoError(t, err)

	ass, err := NewAgeSexStature(os, EmptyEstimatedAge(), femur, EmptyLongBonePair(), EmptyLongBonePair(), "", "None")
	require.NoError(t, err)

	r := ass.ToRow()
	cols := r.Columns()
	require.GreaterOrEqual(t, len(cols), 4)
	assert.Equal(t, []string{"stature", "body_mass", "femur_left_max", "femur_left_bi"}, cols[:4])

	assert.Nil(t, cell(t, r, "stature"))
	assert.Nil(t, cell(t, r, "body_mass"))
	assert.Equal(t, 440.0, cell(t, r, "femur_left_max"))
	assert.Equal(t, 445.0, cell(t, r, "femur_avg_max"))
	assert.Equal(t, 46.0, cell(t, r, "femur_avg_head"))
	assert.Nil(t, cell(t, r, "humerus_avg_max"))
	assert.Nil(t, cell(t, r, "tibia_right_distal"))
	assert.Equal(t, "UNKNOWN", cell(t, r, "age_category_cat"))
	assert.Equal(t, "MALE", cell(t, r, "osteological_sex_pelvic_cat"))
	assert.Equal(t, "MALE", cell(t, r, "osteological_sex_combined_bin_cat"))

	_, err = NewAgeSexStature(os, EmptyEstimatedAge(), femur, femur, femur, "tall", "")
	assert.True(t, apperrors.IsParse(err))
}

func TestAgeSexStature_EmptyHasFullSchema(t *testing.T) {
	r := EmptyAgeSexStature().ToRow()
	// 2 + 3 bones * 3 sides * 4 measurements + 7 age + 12 sex
	assert.Equal(t, 2+36+7+12, r.Len())
}
