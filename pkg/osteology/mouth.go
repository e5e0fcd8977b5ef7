package osteology

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"bioarch/internal/summary"
	"bioarch/internal/validation"
	"bioarch/pkg/contracts/row"
)

// NotAvailable marks a dental observation that could not be made.
const NotAvailable = "NA"

// TeethInMouth is the size of the permanent dentition.
const TeethInMouth = 32

// Ordered vocabularies of the dental observations. The position after NA is
// the exported _val of the ordinal ones.
var (
	ToothStates    = []string{NotAvailable, "0", "1", "A", "B1", "B2", "C", "D", "E", "F", "G", "H", "I"}
	CalculusStates = []string{NotAvailable, "0", "1", "2", "3"}
)

// Tooth records one tooth position. When the tooth itself is NA, calculus,
// enamel hypoplasia and cavities must be NA too; an abscess can still be
// seen in the jaw.
type Tooth struct {
	Tooth            string `json:"tooth" validate:"oneof=NA 0 1 A B1 B2 C D E F G H I"`
	Calculus         string `json:"calculus" validate:"oneof=NA 0 1 2 3"`
	EnamelHypoplasia string `json:"eh" validate:"oneof=NA 0 1"`
	Cavities         string `json:"cavities" validate:"oneof=NA 0 1"`
	Abscess          string `json:"abcess" validate:"oneof=NA 0 1"`
}

func init() {
	validation.RegisterStructRule(validateTooth, Tooth{})
}

func validateTooth(sl validator.StructLevel) {
	t := sl.Current().Interface().(Tooth)
	if t.Tooth != NotAvailable {
		return
	}
	if t.Calculus != NotAvailable {
		sl.ReportError(t.Calculus, "calculus", "Calculus", validation.TagAbsentTooth, "")
	}
	if t.EnamelHypoplasia != NotAvailable {
		sl.ReportError(t.EnamelHypoplasia, "eh", "EnamelHypoplasia", validation.TagAbsentTooth, "")
	}
	if t.Cavities != NotAvailable {
		sl.ReportError(t.Cavities, "cavities", "Cavities", validation.TagAbsentTooth, "")
	}
}

// NewTooth validates the five observations. Input is trimmed and upper-cased.
func NewTooth(tooth, calculus, eh, cavities, abscess string) (Tooth, error) {
	norm := func(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
	t := Tooth{
		Tooth:            norm(tooth),
		Calculus:         norm(calculus),
		EnamelHypoplasia: norm(eh),
		Cavities:         norm(cavities),
		Abscess:          norm(abscess),
	}
	if err := validation.Struct(t); err != nil {
		return Tooth{}, err
	}
	return t, nil
}

// EmptyTooth returns a tooth with every observation NA
func EmptyTooth() Tooth {
	return Tooth{
		Tooth:            NotAvailable,
		Calculus:         NotAvailable,
		EnamelHypoplasia: NotAvailable,
		Cavities:         NotAvailable,
		Abscess:          NotAvailable,
	}
}

// IsPresent reports whether the tooth position was observed
func (t Tooth) IsPresent() bool { return t.Tooth != NotAvailable }

// toothLabels are the column stems of a tooth, in export order.
var toothLabels = []string{"tooth", "calculus", "eh", "cavities", "abcess"}

func (t Tooth) observations() []string {
	return []string{t.Tooth, t.Calculus, t.EnamelHypoplasia, t.Cavities, t.Abscess}
}

func ordinal(states []string, s string) row.Value {
	for i, v := range states {
		if v == s && i > 0 {
			return row.Int(int64(i - 1))
		}
	}
	return row.Absent()
}

func toothValue(label, s string) row.Value {
	switch {
	case s == NotAvailable:
		return row.Absent()
	case label == "tooth":
		return ordinal(ToothStates, s)
	case label == "calculus":
		return ordinal(CalculusStates, s)
	default:
		return row.Bool(s == "1")
	}
}

// ToRow writes each observation as recorded and its _val: the ordinal
// position for tooth and calculus, a boolean for the others, absent for NA.
func (t Tooth) ToRow() row.Row {
	var r row.Row
	for i, s := range t.observations() {
		label := toothLabels[i]
		r.Set(label, row.String(s))
		r.Set(label+"_val", toothValue(label, s))
	}
	return r
}

// ToothGroups lists the tooth groups in export order by universal tooth
// number (1-32).
var ToothGroups = []struct {
	Name    string
	Numbers []int
}{
	{"all", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
		17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}},
	{"molar", []int{1, 2, 3, 14, 15, 16, 17, 18, 19, 30, 31, 32}},
	{"premolars", []int{4, 5, 12, 13, 20, 21, 28, 29}},
	{"canines", []int{6, 11, 22, 27}},
	{"incisors", []int{7, 8, 9, 10, 23, 24, 25, 26}},
}

// Mouth holds the 32 teeth in universal numbering order.
type Mouth struct {
	Teeth []Tooth `json:"teeth" validate:"len=32,dive"`
}

// NewMouth validates the dentition.
func NewMouth(teeth []Tooth) (Mouth, error) {
	m := Mouth{Teeth: append([]Tooth(nil), teeth...)}
	if err := validation.Struct(m); err != nil {
		return Mouth{}, err
	}
	return m, nil
}

// EmptyMouth returns a mouth with every tooth NA.
func EmptyMouth() Mouth {
	teeth := make([]Tooth, TeethInMouth)
	for i := range teeth {
		teeth[i] = EmptyTooth()
	}
	return Mouth{Teeth: teeth}
}

// Tooth returns the tooth with universal number n (1-32)
func (m Mouth) Tooth(n int) (Tooth, bool) {
	if n < 1 || n > len(m.Teeth) {
		return Tooth{}, false
	}
	return m.Teeth[n-1], true
}

// ToRow writes every tooth under all_tooth_<i>_ (i counted from 0), then per
// group the number of teeth present and the statistics of each _val column.
func (m Mouth) ToRow() row.Row {
	var r row.Row
	for i, t := range m.Teeth {
		r.Merge("all_tooth_"+strconv.Itoa(i)+"_", t.ToRow())
	}

	for _, g := range ToothGroups {
		present := 0
		values := make([][]row.Value, len(toothLabels))
		for _, n := range g.Numbers {
			t, ok := m.Tooth(n)
			if !ok {
				continue
			}
			if t.IsPresent() {
				present++
			}
			for j, s := range t.observations() {
				values[j] = append(values[j], toothValue(toothLabels[j], s))
			}
		}
		r.Set(g.Name+"_number_of_teeth", row.Int(int64(present)))
		for j, label := range toothLabels {
			summary.Write(&r, g.Name+"_"+label, values[j])
		}
	}
	return r
}
