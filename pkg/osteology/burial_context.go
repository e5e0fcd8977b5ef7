package osteology

import (
	"fmt"
	"strings"

	"bioarch/internal/summary"
	"bioarch/pkg/category"
	"bioarch/pkg/contracts/row"
	apperrors "bioarch/pkg/errors"
)

// CompassBearing is the direction the head of the body points to.
type CompassBearing int

const (
	North CompassBearing = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// CompassBearings describes the CompassBearing category type.
var CompassBearings = category.MustSet("CompassBearing", []category.Variant[CompassBearing]{
	{Value: North, Name: "NORTH", Rank: 0},
	{Value: NorthEast, Name: "NORTH_EAST", Rank: 1},
	{Value: East, Name: "EAST", Rank: 2},
	{Value: SouthEast, Name: "SOUTH_EAST", Rank: 3},
	{Value: South, Name: "SOUTH", Rank: 4},
	{Value: SouthWest, Name: "SOUTH_WEST", Rank: 5},
	{Value: West, Name: "WEST", Rank: 6},
	{Value: NorthWest, Name: "NORTH_WEST", Rank: 7},
}, lexicon("CompassBearing"))

// ParseCompassBearing resolves a bearing name or its short code
func ParseCompassBearing(raw interface{}) (*CompassBearing, error) {
	return CompassBearings.Parse(raw)
}

func (c CompassBearing) String() string { return CompassBearings.Name(c) }

// Rank returns the numeric rank
func (c CompassBearing) Rank() float64 { return CompassBearings.Rank(c) }

// Short returns the compass code, e.g. "NE".
func (c CompassBearing) Short() string {
	var b strings.Builder
	for _, part := range strings.Split(c.String(), "_") {
		b.WriteByte(part[0])
	}
	return b.String()
}

// BodyPosition is the posture the body was laid in.
type BodyPosition int

const (
	Supine BodyPosition = iota
	SupineFlexedLegs
	LeftSide
	RightSide
	Prone
	Seated
)

// BodyPositions describes the BodyPosition category type. The survey form
// labels are accepted and exported.
var BodyPositions = category.MustSet("BodyPosition", []category.Variant[BodyPosition]{
	{Value: Supine, Name: "SUPINE", Rank: 0, Label: "supine"},
	{Value: SupineFlexedLegs, Name: "SUPINE_FLEXED_LEGS", Rank: 1, Label: "supine with flexed legs"},
	{Value: LeftSide, Name: "LEFT_SIDE", Rank: 2, Label: "on left side"},
	{Value: RightSide, Name: "RIGHT_SIDE", Rank: 3, Label: "on right side"},
	{Value: Prone, Name: "PRONE", Rank: 4, Label: "prone"},
	{Value: Seated, Name: "SEATED", Rank: 5, Label: "seated"},
}, lexicon("BodyPosition"))

// ParseBodyPosition resolves a position name, label or rank
func ParseBodyPosition(raw interface{}) (*BodyPosition, error) {
	return BodyPositions.Parse(raw)
}

func (p BodyPosition) String() string { return BodyPositions.Name(p) }

// Label returns the survey form wording
func (p BodyPosition) Label() string { return BodyPositions.Label(p) }

// Present records whether a grave good was found.
type Present int

const (
	NotFound Present = iota
	Found
)

// Presence describes the Present category type. Booleans and yes/no
// answers are accepted.
var Presence = category.MustSet("Present", []category.Variant[Present]{
	{Value: NotFound, Name: "ABSENT", Rank: 0},
	{Value: Found, Name: "PRESENT", Rank: 1},
}, lexicon("Present"))

// ParsePresent resolves a raw presence answer
func ParsePresent(raw interface{}) (*Present, error) {
	return Presence.Parse(raw)
}

func (p Present) String() string { return Presence.Name(p) }

// RawTag is an unparsed context tag as read from the survey sheet.
type RawTag struct {
	Name  string
	Value interface{}
}

// Tag is a named context observation, usually a grave good.
type Tag struct {
	Name  string
	Value *Present
}

// Context describes how and with what the individual was buried.
type Context struct {
	BodyPosition    *BodyPosition
	BodyOrientation *CompassBearing
	Tags            []Tag
}

// countColumn is the aggregate suffix written after the tags of a group, so
// it cannot name a tag.
const countColumn = "count"

// NewContext parses the body position and the tags. Tag names must be
// unique, compared case-insensitively, and must not be "count".
func NewContext(position interface{}, orientation *CompassBearing, tags []RawTag) (Context, error) {
	pos, err := ParseBodyPosition(position)
	if err != nil {
		return Context{}, err
	}
	if orientation != nil && !CompassBearings.Valid(*orientation) {
		return Context{}, apperrors.NewParseError("CompassBearing", int(*orientation))
	}

	c := Context{BodyPosition: pos, Tags: make([]Tag, 0, len(tags))}
	if orientation != nil {
		o := *orientation
		c.BodyOrientation = &o
	}

	seen := make(map[string]bool, len(tags))
	for _, raw := range tags {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return Context{}, apperrors.NewDomainValidationError("tags", "tag without a name", raw.Value)
		}
		key := category.Fold(name)
		if key == category.Fold(countColumn) {
			return Context{}, apperrors.NewDomainValidationError("tags", fmt.Sprintf("tag name %q is reserved", name), raw.Value)
		}
		if seen[key] {
			return Context{}, apperrors.NewDomainValidationError("tags", fmt.Sprintf("tag %q given twice", name), raw.Value)
		}
		seen[key] = true

		v, err := ParsePresent(raw.Value)
		if err != nil {
			return Context{}, fmt.Errorf("tag %s: %w", name, err)
		}
		c.Tags = append(c.Tags, Tag{Name: name, Value: v})
	}
	return c, nil
}

// EmptyContext returns a context with nothing recorded
func EmptyContext() Context {
	return Context{}
}

// Tag returns the recorded value of a tag, matched case-insensitively.
func (c Context) Tag(name string) (*Present, bool) {
	key := category.Fold(name)
	for _, t := range c.Tags {
		if category.Fold(t.Name) == key {
			return t.Value, true
		}
	}
	return nil, false
}

func presentValue(p *Present) row.Value {
	if p == nil {
		return row.Absent()
	}
	return row.Bool(*p == Found)
}

// ToRow writes body_position, body_orientation_cat/_val, all_<tag> and
// all_count, then per grave-good group <group>_<tag> (rank) for member tags
// and <group>_count.
func (c Context) ToRow() row.Row {
	var r row.Row

	if c.BodyPosition == nil {
		r.Set("body_position", row.Absent())
	} else {
		r.Set("body_position", row.String(c.BodyPosition.Label()))
	}
	setCategory(&r, "body_orientation", CompassBearings, c.BodyOrientation)

	all := make([]row.Value, len(c.Tags))
	for i, t := range c.Tags {
		all[i] = presentValue(t.Value)
		r.Set("all_"+t.Name, all[i])
	}
	r.Set("all_"+countColumn, row.Int(int64(summary.CountTrue(all))))

	for _, group := range vocab.GroupNames() {
		n := 0
		for _, t := range c.Tags {
			if !vocab.InGroup(t.Name, group) {
				continue
			}
			if t.Value == nil {
				r.Set(group+"_"+t.Name, row.Absent())
				continue
			}
			r.Set(group+"_"+t.Name, row.Number(Presence.Rank(*t.Value)))
			if *t.Value == Found {
				n++
			}
		}
		r.Set(group+"_"+countColumn, row.Int(int64(n)))
	}
	return r
}
