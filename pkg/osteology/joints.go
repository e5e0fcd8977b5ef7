package osteology

import (
	"math"

	"bioarch/internal/summary"
	"bioarch/pkg/bilateral"
	"bioarch/pkg/category"
	"bioarch/pkg/contracts/row"
)

// JointCondition grades degenerative change of a joint surface.
type JointCondition int

const (
	JointNotPresent JointCondition = iota
	JointNormal
	JointMild
	JointMedium
	JointExtreme
	JointFused
	JointSchmorlsNodes
	JointFracture
)

// JointConditions describes the JointCondition category type.
var JointConditions = category.MustSet("JointCondition", []category.Variant[JointCondition]{
	{Value: JointNotPresent, Name: "NOT_PRESENT", Rank: -1},
	{Value: JointNormal, Name: "NORMAL", Rank: 0},
	{Value: JointMild, Name: "MILD", Rank: 1},
	{Value: JointMedium, Name: "MEDIUM", Rank: 2},
	{Value: JointExtreme, Name: "EXTREME", Rank: 3},
	{Value: JointFused, Name: "FUSED", Rank: 4},
	{Value: JointSchmorlsNodes, Name: "SCHMORALS_NODES", Rank: 5},
	{Value: JointFracture, Name: "FRACTURE", Rank: 6},
}, lexicon("JointCondition"))

// ParseJointCondition resolves a raw joint grade. NA and N mean not recorded.
func ParseJointCondition(raw interface{}) (*JointCondition, error) {
	return JointConditions.Parse(raw)
}

func (j JointCondition) String() string { return JointConditions.Name(j) }

// Rank returns the numeric rank
func (j JointCondition) Rank() float64 { return JointConditions.Rank(j) }

// Combine merges the two sides of a joint. NOT_PRESENT defers to the other
// side; otherwise the mean rank is rounded down to the nearest grade.
func (JointCondition) Combine(left, right JointCondition) (JointCondition, error) {
	if left == JointNotPresent {
		return right, nil
	}
	if right == JointNotPresent {
		return left, nil
	}
	mean := math.Floor((left.Rank() + right.Rank()) / 2)
	return JointConditions.FromRank(mean)
}

// JointPair is the left and right grade of one joint.
type JointPair = bilateral.Pair[JointCondition]

// NewJointPair parses both sides of a joint.
func NewJointPair(left, right interface{}) (JointPair, error) {
	l, err := ParseJointCondition(left)
	if err != nil {
		return JointPair{}, err
	}
	r, err := ParseJointCondition(right)
	if err != nil {
		return JointPair{}, err
	}
	return bilateral.New(l, r)
}

// Joints records the appendicular joints per side and the axial skeleton by
// region.
type Joints struct {
	Shoulder JointPair
	Elbow    JointPair
	Wrist    JointPair
	Hip      JointPair
	Knee     JointPair
	Ankle    JointPair

	SacroIliac *JointCondition
	C1To3      *JointCondition
	C4To7      *JointCondition
	T1To4      *JointCondition
	T5To8      *JointCondition
	T9To12     *JointCondition
	L1To5      *JointCondition
}

// EmptyJoints returns joints with every site NOT_PRESENT.
func EmptyJoints() Joints {
	np := func() *JointCondition { v := JointNotPresent; return &v }
	pair := func() JointPair { p, _ := bilateral.New(np(), np()); return p }
	return Joints{
		Shoulder:   pair(),
		Elbow:      pair(),
		Wrist:      pair(),
		Hip:        pair(),
		Knee:       pair(),
		Ankle:      pair(),
		SacroIliac: np(),
		C1To3:      np(),
		C4To7:      np(),
		T1To4:      np(),
		T5To8:      np(),
		T9To12:     np(),
		L1To5:      np(),
	}
}

// AverageFields averages two joint records site by site.
func (Joints) AverageFields() []bilateral.Field[Joints] {
	fields := make([]bilateral.Field[Joints], 0, 13)
	for _, j := range jointPairs {
		fields = append(fields, bilateral.Value(j.key, j.ref))
	}
	for _, j := range jointSites {
		fields = append(fields, bilateral.Optional(j.key, j.ref))
	}
	return fields
}

type jointPairField struct {
	key string
	ref func(*Joints) *JointPair
}

type jointSiteField struct {
	key string
	ref func(*Joints) **JointCondition
}

var jointPairs = []jointPairField{
	{"shoulder", func(j *Joints) *JointPair { return &j.Shoulder }},
	{"elbow", func(j *Joints) *JointPair { return &j.Elbow }},
	{"wrist", func(j *Joints) *JointPair { return &j.Wrist }},
	{"hip", func(j *Joints) *JointPair { return &j.Hip }},
	{"knee", func(j *Joints) *JointPair { return &j.Knee }},
	{"ankle", func(j *Joints) *JointPair { return &j.Ankle }},
}

var jointSites = []jointSiteField{
	{"sacro_illiac", func(j *Joints) **JointCondition { return &j.SacroIliac }},
	{"c1_3", func(j *Joints) **JointCondition { return &j.C1To3 }},
	{"c4_7", func(j *Joints) **JointCondition { return &j.C4To7 }},
	{"t1_4", func(j *Joints) **JointCondition { return &j.T1To4 }},
	{"t5_8", func(j *Joints) **JointCondition { return &j.T5To8 }},
	{"t9_12", func(j *Joints) **JointCondition { return &j.T9To12 }},
	{"l1_5", func(j *Joints) **JointCondition { return &j.L1To5 }},
}

// JointGroups lists the summary groups in export order with their member
// columns. Bilateral joints contribute their average.
var JointGroups = []struct {
	Name    string
	Members []string
}{
	{"appendicular", []string{"shoulder", "elbow", "wrist", "hip", "knee", "ankle"}},
	{"axial", []string{"sacro_illiac", "c1_3", "c4_7", "t1_4", "t5_8", "t9_12", "l1_5"}},
	{"cervical", []string{"c1_3", "c4_7"}},
	{"thoracic", []string{"t1_4", "t5_8", "t9_12"}},
	{"lumbar", []string{"l1_5"}},
}

// ToRow flattens every joint and appends the group statistics. NOT_PRESENT
// grades are left out of the statistics.
func (j Joints) ToRow() row.Row {
	var r row.Row
	graded := make(map[string]row.Value, 13)

	for _, f := range jointPairs {
		graded[f.key] = setCategoryPair(&r, f.key, JointConditions, *f.ref(&j))
	}
	for _, f := range jointSites {
		v := *f.ref(&j)
		setCategory(&r, f.key, JointConditions, v)
		graded[f.key] = categoryValue(JointConditions, v)
	}

	for _, g := range JointGroups {
		values := make([]row.Value, 0, len(g.Members))
		for _, m := range g.Members {
			v := graded[m]
			if v.IsAbsent() || v.Label() == JointNotPresent.String() {
				continue
			}
			values = append(values, v)
		}
		summary.Write(&r, g.Name, values)
	}
	return r
}
