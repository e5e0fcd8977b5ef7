package osteology

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bioarch/pkg/category"
	apperrors "bioarch/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

// checkSet runs the properties shared by every category type: each variant
// round-trips through its name and its rank, the order is total and follows
// rank, and nil sorts first.
func checkSet[T ~int](t *testing.T, set *category.Set[T]) {
	t.Helper()
	variants := set.Variants()
	require.NotEmpty(t, variants)

	for _, v := range variants {
		got, err := set.Parse(set.Name(v))
		require.NoError(t, err, set.Name(v))
		assert.Equal(t, v, *got)

		got, err = set.Parse(category.FormatRank(set.Rank(v)))
		require.NoError(t, err, set.Name(v))
		assert.Equal(t, v, *got)

		assert.Equal(t, -1, set.Compare(nil, &v))
		assert.Equal(t, 1, set.Compare(&v, nil))
	}

	for i, a := range variants {
		for j, b := range variants {
			c := set.Compare(&a, &b)
			switch {
			case i < j:
				assert.Equal(t, -1, c)
			case i > j:
				assert.Equal(t, 1, c)
			default:
				assert.Equal(t, 0, c)
			}
		}
	}

	_, err := set.Parse("definitely not a variant")
	assert.True(t, apperrors.IsParse(err))
}

func TestCategorySets_Properties(t *testing.T) {
	t.Run("Sex", func(t *testing.T) { checkSet(t, Sexes) })
	t.Run("AgeCategory", func(t *testing.T) { checkSet(t, AgeCategories) })
	t.Run("JointCondition", func(t *testing.T) { checkSet(t, JointConditions) })
	t.Run("TraumaCategory", func(t *testing.T) { checkSet(t, TraumaCategories) })
	t.Run("CompassBearing", func(t *testing.T) { checkSet(t, CompassBearings) })
	t.Run("BodyPosition", func(t *testing.T) { checkSet(t, BodyPositions) })
	t.Run("Present", func(t *testing.T) { checkSet(t, Presence) })
}

func TestParseSex(t *testing.T) {
	tests := []struct {
		raw      interface{}
		expected *Sex
		wantErr  bool
	}{
		{raw: nil, expected: nil},
		{raw: "NA", expected: nil},
		{raw: "M", expected: ptr(SexMale)},
		{raw: "m?", expected: ptr(SexMaleLikely)},
		{raw: "?M", expected: ptr(SexMaleLikely)},
		{raw: "M??", expected: ptr(SexMaleAssumed)},
		{raw: "??M", expected: ptr(SexMaleAssumed)},
		{raw: "F", expected: ptr(SexFemale)},
		{raw: "F?", expected: ptr(SexFemaleLikely)},
		{raw: "??f", expected: ptr(SexFemaleAssumed)},
		{raw: "?", expected: ptr(SexUnknown)},
		{raw: "female_likely", expected: ptr(SexFemaleLikely)},
		{raw: "50", expected: ptr(SexUnknown)},
		{raw: 100, expected: ptr(SexMale)},
		{raw: SexMaleAssumed, expected: ptr(SexMaleAssumed)},
		{raw: "XYZ", wantErr: true},
		{raw: "", wantErr: true},
		{raw: 42, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSex(tt.raw)
		if tt.wantErr {
			assert.True(t, apperrors.IsParse(err), "%v", tt.raw)
			continue
		}
		require.NoError(t, err, "%v", tt.raw)
		assert.Equal(t, tt.expected, got, "%v", tt.raw)
	}
}

func TestSex_Binary(t *testing.T) {
	for _, s := range Sexes.Variants() {
		b := s.Binary()
		switch {
		case s == SexUnknown:
			assert.Nil(t, b)
		case s.Rank() > 50:
			require.NotNil(t, b)
			assert.Equal(t, SexMale, *b, s.String())
		default:
			require.NotNil(t, b)
			assert.Equal(t, SexFemale, *b, s.String())
		}
	}
}

func TestAgeCategory_Parse(t *testing.T) {
	tests := []struct {
		raw      string
		expected AgeCategory
	}{
		{"OA", AgeOld},
		{"old", AgeOld},
		{"MIDDLE/OLD", AgeMiddleOld},
		{"middle old", AgeMiddleOld},
		{"Young Adult", AgeYoungAdult},
		{"young_adult", AgeYoungAdult},
		{"6", AgeOld},
		{"?", AgeUnknown},
	}
	for _, tt := range tests {
		got, err := ParseAgeCategory(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.expected, *got, tt.raw)
	}

	_, err := ParseAgeCategory("ancient")
	assert.True(t, apperrors.IsParse(err))
}

func TestAgeCategory_Sorting(t *testing.T) {
	values := []*AgeCategory{ptr(AgeOld), ptr(AgeYoung), nil}
	slices.SortFunc(values, AgeCategories.Compare)
	assert.Equal(t, []*AgeCategory{nil, ptr(AgeYoung), ptr(AgeOld)}, values)
}

func TestAgeCategory_Quad(t *testing.T) {
	assert.Equal(t, AgeYoung, AgeYoungAdult.Quad())
	assert.Equal(t, AgeMiddle, AgeMiddleOld.Quad())
	for _, a := range []AgeCategory{AgeUnknown, AgeYoung, AgeAdult, AgeMiddle, AgeOld} {
		assert.Equal(t, a, a.Quad())
	}
}

func TestJointCondition_Parse(t *testing.T) {
	tests := []struct {
		raw      interface{}
		expected *JointCondition
	}{
		{raw: nil, expected: nil},
		{raw: "NA", expected: nil},
		{raw: "N", expected: nil},
		{raw: "0", expected: ptr(JointNormal)},
		{raw: "1", expected: ptr(JointMild)},
		{raw: "MILD", expected: ptr(JointMild)},
		{raw: "2", expected: ptr(JointMedium)},
		{raw: "3", expected: ptr(JointExtreme)},
		{raw: "EXTREAM", expected: ptr(JointExtreme)},
		{raw: "4", expected: ptr(JointFused)},
		{raw: "5", expected: ptr(JointSchmorlsNodes)},
		{raw: "6", expected: ptr(JointFracture)},
		{raw: "-1", expected: ptr(JointNotPresent)},
		{raw: 0, expected: ptr(JointNormal)},
	}
	for _, tt := range tests {
		got, err := ParseJointCondition(tt.raw)
		require.NoError(t, err, "%v", tt.raw)
		assert.Equal(t, tt.expected, got, "%v", tt.raw)
	}

	_, err := ParseJointCondition("")
	assert.True(t, apperrors.IsParse(err))
}

func TestJointCondition_CompareAny(t *testing.T) {
	mild := ptr(JointMild)

	c, err := JointConditions.CompareAny(mild, 3)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = JointConditions.CompareAny(mild, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	_, err = JointConditions.CompareAny(mild, -2)
	assert.True(t, apperrors.IsParse(err))

	_, err = JointConditions.CompareAny(mild, "MILD")
	assert.True(t, apperrors.IsTypeComparison(err))
}

func TestTraumaCategory_Parse(t *testing.T) {
	tests := []struct {
		raw      interface{}
		expected TraumaCategory
	}{
		{"NA", TraumaNotPresent},
		{"na", TraumaNotPresent},
		{"N", TraumaNotPresent},
		{"-1", TraumaNotPresent},
		{"0.5", TraumaPartialBone},
		{0.5, TraumaPartialBone},
		{"1", TraumaNormal},
		{"2", TraumaInfection},
		{"3", TraumaFracture},
		{"fracture", TraumaFracture},
		{"4", TraumaUnhealedFracture},
		{"5", TraumaCriba},
		{"6", TraumaBluntForce},
		{"7", TraumaSharpForce},
		{"8", TraumaTreponation},
		{"9", TraumaUnfused},
		{"10", TraumaBonyGrowth},
		{"11", TraumaFused},
		{"12", TraumaOsteochondritisDissecans},
		{TraumaFracture, TraumaFracture},
	}
	for _, tt := range tests {
		got, err := ParseTraumaCategory(tt.raw)
		require.NoError(t, err, "%v", tt.raw)
		require.NotNil(t, got, "%v", tt.raw)
		assert.Equal(t, tt.expected, *got, "%v", tt.raw)
	}

	got, err := ParseTraumaCategory(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompassBearing(t *testing.T) {
	shorts := map[CompassBearing]string{
		North: "N", NorthEast: "NE", East: "E", SouthEast: "SE",
		South: "S", SouthWest: "SW", West: "W", NorthWest: "NW",
	}
	for c, short := range shorts {
		assert.Equal(t, short, c.Short())
		got, err := ParseCompassBearing(short)
		require.NoError(t, err)
		assert.Equal(t, c, *got)
	}

	got, err := ParseCompassBearing("NORTH")
	require.NoError(t, err)
	assert.Equal(t, North, *got)

	got, err = ParseCompassBearing(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	values := []*CompassBearing{ptr(South), ptr(North), nil}
	slices.SortFunc(values, CompassBearings.Compare)
	assert.Equal(t, []*CompassBearing{nil, ptr(North), ptr(South)}, values)
}

func TestParseBodyPosition(t *testing.T) {
	tests := []struct {
		raw      interface{}
		expected *BodyPosition
		wantErr  bool
	}{
		{raw: 0, expected: ptr(Supine)},
		{raw: 1, expected: ptr(SupineFlexedLegs)},
		{raw: "on left side", expected: ptr(LeftSide)},
		{raw: "RIGHT_SIDE", expected: ptr(RightSide)},
		{raw: "NA", expected: nil},
		{raw: nil, expected: nil},
		{raw: "foo", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseBodyPosition(tt.raw)
		if tt.wantErr {
			assert.True(t, apperrors.IsParse(err))
			continue
		}
		require.NoError(t, err, "%v", tt.raw)
		assert.Equal(t, tt.expected, got, "%v", tt.raw)
	}
	assert.Equal(t, "supine with flexed legs", SupineFlexedLegs.Label())
}

func TestParsePresent(t *testing.T) {
	tests := []struct {
		raw      interface{}
		expected *Present
		wantErr  bool
	}{
		{raw: true, expected: ptr(Found)},
		{raw: false, expected: ptr(NotFound)},
		{raw: "Y", expected: ptr(Found)},
		{raw: "no", expected: ptr(NotFound)},
		{raw: 1, expected: ptr(Found)},
		{raw: nil, expected: nil},
		{raw: "NA", expected: nil},
		{raw: "na", expected: nil},
		{raw: "foo", wantErr: true},
		{raw: 10, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePresent(tt.raw)
		if tt.wantErr {
			assert.True(t, apperrors.IsParse(err), "%v", tt.raw)
			continue
		}
		require.NoError(t, err, "%v", tt.raw)
		assert.Equal(t, tt.expected, got, "%v", tt.raw)
	}
}
