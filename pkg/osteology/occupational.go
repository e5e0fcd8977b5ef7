package osteology

import (
	"fmt"
	"log/slog"
	"strings"

	"bioarch/internal/summary"
	"bioarch/internal/validation"
	"bioarch/pkg/bilateral"
	"bioarch/pkg/contracts/row"
	apperrors "bioarch/pkg/errors"
)

// Limb groups the bones carrying enthesial markers.
type Limb string

const (
	UpperLimb Limb = "upper_limb"
	LowerLimb Limb = "lower_limb"
)

// MarkerSite describes one scored muscle or ligament attachment.
type MarkerSite struct {
	// Key is the column stem. Historical spellings are kept as-is.
	Key    string
	Bone   string
	Limb   Limb
	Origin bool
}

func site(key, bone string, limb Limb) MarkerSite {
	return MarkerSite{
		Key:    key,
		Bone:   bone,
		Limb:   limb,
		Origin: strings.Contains(key, "_o_") || strings.HasPrefix(key, "o_"),
	}
}

// MarkerSites is the survey form order of the attachment sites.
var MarkerSites = []MarkerSite{
	site("c_trapezius", "clavicle", UpperLimb),
	site("c_o_deltiod", "clavicle", UpperLimb),
	site("c_o_pectoralis_major", "clavicle", UpperLimb),
	site("c_costoclaviclar_lig", "clavicle", UpperLimb),
	site("c_subcalvius", "clavicle", UpperLimb),
	site("c_conoid_lig", "clavicle", UpperLimb),
	site("c_trapezoid_lig", "clavicle", UpperLimb),

	site("s_pectoralis_minor", "scapula", UpperLimb),
	site("s_serratus_anterior", "scapula", UpperLimb),
	site("s_triceps_long_head", "scapula", UpperLimb),
	site("s_trapezius", "scapula", UpperLimb),

	site("h_subscapularis", "humerus", UpperLimb),
	site("h_teres_major", "humerus", UpperLimb),
	site("h_latissimus_dorsi", "humerus", UpperLimb),
	site("h_pectoralis_major", "humerus", UpperLimb),
	site("h_deltoid", "humerus", UpperLimb),
	site("h_coracobrachialis", "humerus", UpperLimb),
	site("h_supraspinatus", "humerus", UpperLimb),
	site("h_infraspinatus", "humerus", UpperLimb),
	site("h_teres_minor", "humerus", UpperLimb),
	site("h_o_extensor", "humerus", UpperLimb),
	site("h_o_flexor", "humerus", UpperLimb),

	site("u_brachialis", "ulna", UpperLimb),
	site("u_o_pronator_quadrataus", "ulna", UpperLimb),
	site("u_triceps_brachii", "ulna", UpperLimb),
	site("u_anconeus", "ulna", UpperLimb),
	site("u_o_supinator", "ulna", UpperLimb),

	site("r_biceps_brachii", "radius", UpperLimb),
	site("r_supinator", "radius", UpperLimb),
	site("r_pronator_teres", "radius", UpperLimb),
	site("r_pronator_quadratus", "radius", UpperLimb),
	site("r_brachoradialis", "radius", UpperLimb),

	site("f_gluteus_minimus", "femur", LowerLimb),
	site("f_gluteus_medius", "femur", LowerLimb),
	site("f_piriformus", "femur", LowerLimb),
	site("f_obturator_internus", "femur", LowerLimb),
	site("f_obturator_externus", "femur", LowerLimb),
	site("f_quadratis_femoris", "femur", LowerLimb),
	site("f_ilioposas", "femur", LowerLimb),
	site("f_gluteus_maximus", "femur", LowerLimb),
	site("f_pectineus", "femur", LowerLimb),
	site("f_o_vastus_medialis", "femur", LowerLimb),
	site("f_o_vastus_lateralis", "femur", LowerLimb),
	site("o_adductor_magnus", "femur", LowerLimb),
	site("f_o_gastrocnemius", "femur", LowerLimb),
	site("f_o_plantaris", "femur", LowerLimb),
	site("f_o_popliteus", "femur", LowerLimb),

	site("t_tensor_fascia_latae", "tibia", LowerLimb),
	site("t_quadriceps", "tibia", LowerLimb),
	site("t_sartorius", "tibia", LowerLimb),
	site("t_gracilis", "tibia", LowerLimb),
	site("t_semitendinosus", "tibia", LowerLimb),
	site("t_o_tibialus_anterior", "tibia", LowerLimb),
	site("t_biceps_femoris", "tibia", LowerLimb),
	site("t_semimembranosus", "tibia", LowerLimb),
	site("t_popliteus", "tibia", LowerLimb),
	site("t_o_soleus", "tibia", LowerLimb),
	site("t_o_tibialis_posterior", "tibia", LowerLimb),
	site("t_o_flexor_digitorium", "tibia", LowerLimb),

	site("f_biceps_femoris", "fibula", LowerLimb),
	site("f_o_extensor_muscles", "fibula", LowerLimb),
	site("f_o_flexor_muscles", "fibula", LowerLimb),
	site("f_o_peroneus_longus", "fibula", LowerLimb),
	site("f_o_peronus_brevis", "fibula", LowerLimb),
	site("f_o_soleus", "fibula", LowerLimb),

	site("p_quadriceps", "patella", LowerLimb),

	site("c_achilles", "calcaneus", LowerLimb),
}

// MarkerBones lists the bones in survey form order.
var MarkerBones = []string{
	"clavicle", "scapula", "humerus", "ulna", "radius",
	"femur", "tibia", "fibula", "patella", "calcaneus",
}

var markerIndex = func() map[string]int {
	idx := make(map[string]int, len(MarkerSites))
	for i, s := range MarkerSites {
		idx[s.Key] = i
	}
	return idx
}()

// MarkerPair is the left and right score of one attachment site.
type MarkerPair = bilateral.Pair[EnthesialMarker]

// NewMarkerPair parses both sides of a site.
func NewMarkerPair(left, right interface{}) (MarkerPair, error) {
	l, err := ParseEnthesialMarker(left)
	if err != nil {
		return MarkerPair{}, err
	}
	r, err := ParseEnthesialMarker(right)
	if err != nil {
		return MarkerPair{}, err
	}
	return bilateral.New(l, r)
}

// OccupationalMarkers holds one pair per entry of MarkerSites, in order.
type OccupationalMarkers struct {
	Sites []MarkerPair `json:"sites" validate:"len=67"`
}

// NewOccupationalMarkers takes the pairs in MarkerSites order.
func NewOccupationalMarkers(pairs []MarkerPair) (OccupationalMarkers, error) {
	o := OccupationalMarkers{Sites: append([]MarkerPair(nil), pairs...)}
	if err := validation.Struct(o); err != nil {
		return OccupationalMarkers{}, err
	}
	return o, nil
}

// NewOccupationalMarkersFromMap takes pairs by site key. Missing sites are
// empty; unknown keys are a DomainValidationError.
func NewOccupationalMarkersFromMap(pairs map[string]MarkerPair) (OccupationalMarkers, error) {
	o := EmptyOccupationalMarkers()
	for key, p := range pairs {
		i, ok := markerIndex[key]
		if !ok {
			return OccupationalMarkers{}, apperrors.NewDomainValidationError("sites", "unknown attachment site", key)
		}
		o.Sites[i] = p
	}
	return o, nil
}

// EmptyOccupationalMarkers returns markers with no site scored
func EmptyOccupationalMarkers() OccupationalMarkers {
	return OccupationalMarkers{Sites: make([]MarkerPair, len(MarkerSites))}
}

// Marker returns the pair recorded for a site key.
func (o OccupationalMarkers) Marker(key string) (MarkerPair, bool) {
	i, ok := markerIndex[key]
	if !ok || i >= len(o.Sites) {
		return MarkerPair{}, false
	}
	return o.Sites[i], true
}

// With returns a copy with the pair of one site replaced.
func (o OccupationalMarkers) With(key string, p MarkerPair) (OccupationalMarkers, error) {
	i, ok := markerIndex[key]
	if !ok {
		return OccupationalMarkers{}, apperrors.NewDomainValidationError("sites", "unknown attachment site", key)
	}
	sites := append([]MarkerPair(nil), o.Sites...)
	sites[i] = p
	return OccupationalMarkers{Sites: sites}, nil
}

func markerValue(m *EnthesialMarker) row.Value {
	if m == nil {
		return row.Absent()
	}
	return row.String(m.String())
}

// ToRow writes <key>_left, <key>_right, <key>_avg and <key>_avg_val per site,
// then the statistics of the averaged scores for all, per limb and per bone.
func (o OccupationalMarkers) ToRow() row.Row {
	var r row.Row
	groups := make(map[string][]row.Value, len(MarkerBones)+3)

	for i, s := range MarkerSites {
		var p MarkerPair
		if i < len(o.Sites) {
			p = o.Sites[i]
		}
		avg, err := p.Avg()
		if err != nil {
			slog.Debug("enthesial marker sides have no common value",
				slog.String("column", s.Key),
				slog.String("error", err.Error()))
			avg = nil
		}

		r.Set(s.Key+"_left", markerValue(p.Left()))
		r.Set(s.Key+"_right", markerValue(p.Right()))
		r.Set(s.Key+"_avg", markerValue(avg))
		if avg == nil {
			r.Set(s.Key+"_avg_val", row.Absent())
			continue
		}
		v := row.Number(avg.AsNum())
		r.Set(s.Key+"_avg_val", v)
		for _, g := range []string{"all", string(s.Limb), s.Bone} {
			groups[g] = append(groups[g], v)
		}
	}

	for _, g := range append([]string{"all", string(UpperLimb), string(LowerLimb)}, MarkerBones...) {
		summary.Write(&r, g, groups[g])
	}
	return r
}

// String lists the scored sites
func (o OccupationalMarkers) String() string {
	var b strings.Builder
	for i, s := range MarkerSites {
		if i >= len(o.Sites) || o.Sites[i].IsEmpty() {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%s", s.Key, o.Sites[i])
	}
	return b.String()
}
