package osteology

import (
	"strings"

	"github.com/google/uuid"

	"bioarch/internal/validation"
	"bioarch/pkg/contracts/row"
)

// keyNamespace scopes the name-based keys of individuals.
var keyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:bioarch:individual"))

// BurialInfo identifies the excavation site.
type BurialInfo struct {
	SiteName string `json:"site_name" validate:"required"`
	SiteID   string `json:"site_id" validate:"required"`
}

// NewBurialInfo requires both the site name and id.
func NewBurialInfo(siteName, siteID string) (BurialInfo, error) {
	b := BurialInfo{SiteName: strings.TrimSpace(siteName), SiteID: strings.TrimSpace(siteID)}
	if err := validation.Struct(b); err != nil {
		return BurialInfo{}, err
	}
	return b, nil
}

// ToRow writes name and id
func (b BurialInfo) ToRow() row.Row {
	var r row.Row
	r.Set("name", row.String(b.SiteName))
	r.Set("id", row.String(b.SiteID))
	return r
}

// Individual is one burial record.
type Individual struct {
	ID                  string     `json:"id" validate:"required"`
	Site                BurialInfo `json:"site"`
	AgeSexStature       AgeSexStature
	Mouth               Mouth
	OccupationalMarkers OccupationalMarkers
	Joints              Joints
	Trauma              Trauma
	Context             Context
}

// NewIndividual assembles a record. The id is required, the site must be
// complete and the sections are validated again as a whole.
func NewIndividual(id string, site BurialInfo, ass AgeSexStature, mouth Mouth,
	markers OccupationalMarkers, joints Joints, trauma Trauma, context Context) (Individual, error) {
	ind := Individual{
		ID:                  strings.TrimSpace(id),
		Site:                site,
		AgeSexStature:       ass,
		Mouth:               mouth,
		OccupationalMarkers: markers,
		Joints:              joints,
		Trauma:              trauma,
		Context:             context,
	}
	if err := validation.Struct(ind); err != nil {
		return Individual{}, err
	}
	return ind, nil
}

// EmptyIndividual returns a record with every section empty.
func EmptyIndividual(id string, site BurialInfo) Individual {
	return Individual{
		ID:                  id,
		Site:                site,
		AgeSexStature:       EmptyAgeSexStature(),
		Mouth:               EmptyMouth(),
		OccupationalMarkers: EmptyOccupationalMarkers(),
		Joints:              EmptyJoints(),
		Trauma:              EmptyTrauma(),
		Context:             EmptyContext(),
	}
}

// Key derives a stable identifier from the site id and the individual id,
// so records from sites reusing burial numbers stay distinct.
func (i Individual) Key() uuid.UUID {
	return uuid.NewSHA1(keyNamespace, []byte(i.Site.SiteID+"/"+i.ID))
}

// ToRow flattens the whole record into one row.
func (i Individual) ToRow() row.Row {
	var r row.Row
	r.Set("id", row.String(i.ID))
	r.Set("key", row.String(i.Key().String()))
	r.Merge("site_", i.Site.ToRow())
	r.Merge("mouth_", i.Mouth.ToRow())
	r.Merge("joints_", i.Joints.ToRow())
	r.Merge("ass_", i.AgeSexStature.ToRow())
	r.Merge("om_", i.OccupationalMarkers.ToRow())
	r.Merge("trauma_", i.Trauma.ToRow())
	r.Merge("context_", i.Context.ToRow())
	return r
}

// Frame flattens individuals in order.
func Frame(individuals ...Individual) []row.Row {
	rows := make([]row.Row, len(individuals))
	for n, ind := range individuals {
		rows[n] = ind.ToRow()
	}
	return rows
}
