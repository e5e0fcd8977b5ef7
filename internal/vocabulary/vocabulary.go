// Package vocabulary loads the versioned table of accepted survey strings:
// per category type aliases and absent markers, and the grave-good group
// taxonomy used when flattening burial contexts.
package vocabulary

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"

	"bioarch/pkg/category"
	apperrors "bioarch/pkg/errors"
)

//go:embed vocabulary.yaml
var embedded []byte

// Document is the decoded vocabulary file
type Document struct {
	Version    int                      `yaml:"version"`
	Categories map[string]CategoryEntry `yaml:"categories"`
	GraveGoods GraveGoods               `yaml:"grave_goods"`

	groupsByItem map[string][]string
}

// CategoryEntry holds the vocabulary of one category type
type CategoryEntry struct {
	Aliases  map[string]string `yaml:"aliases"`
	Absent   []string          `yaml:"absent"`
	Booleans bool              `yaml:"booleans"`
}

// GraveGoods is the ordered group taxonomy for context tags
type GraveGoods struct {
	Groups []Group `yaml:"groups"`
}

// Group is a named set of context tags
type Group struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

var defaultDocument = mustParse(embedded)

// Default returns the vocabulary compiled into the module.
func Default() *Document {
	return defaultDocument
}

func mustParse(data []byte) *Document {
	doc, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary: %v", err))
	}
	return doc
}

// Parse decodes and checks a vocabulary document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, apperrors.NewConfigError("decode vocabulary", err)
	}
	if err := doc.index(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) index() error {
	if d.Version <= 0 {
		return apperrors.NewConfigError(fmt.Sprintf("vocabulary version must be positive, got %d", d.Version), nil)
	}

	d.groupsByItem = make(map[string][]string)
	seen := make(map[string]bool, len(d.GraveGoods.Groups))
	for _, g := range d.GraveGoods.Groups {
		if g.Name == "" {
			return apperrors.NewConfigError("grave-good group without a name", nil)
		}
		if seen[g.Name] {
			return apperrors.NewConfigError(fmt.Sprintf("grave-good group %q declared twice", g.Name), nil)
		}
		seen[g.Name] = true

		for _, item := range g.Items {
			key := category.Fold(item)
			if key == "" {
				return apperrors.NewConfigError(fmt.Sprintf("grave-good group %q has an empty item", g.Name), nil)
			}
			for _, existing := range d.groupsByItem[key] {
				if existing == g.Name {
					return apperrors.NewConfigError(fmt.Sprintf("%q listed twice in group %q", item, g.Name), nil)
				}
			}
			d.groupsByItem[key] = append(d.groupsByItem[key], g.Name)
		}
	}
	return nil
}

// Lexicon returns the vocabulary of a category type. Unknown types get an
// empty lexicon: only canonical names and ranks are accepted.
func (d *Document) Lexicon(typeName string) category.Lexicon {
	entry := d.Categories[typeName]
	return category.Lexicon{
		Aliases:  entry.Aliases,
		Absent:   entry.Absent,
		Booleans: entry.Booleans,
	}
}

// GroupNames returns the grave-good group names in export order.
func (d *Document) GroupNames() []string {
	out := make([]string, len(d.GraveGoods.Groups))
	for i, g := range d.GraveGoods.Groups {
		out[i] = g.Name
	}
	return out
}

// GroupsOf returns the groups a context tag belongs to, case-insensitively.
func (d *Document) GroupsOf(tag string) []string {
	groups := d.groupsByItem[category.Fold(tag)]
	out := make([]string, len(groups))
	copy(out, groups)
	return out
}

// InGroup reports whether tag belongs to group.
func (d *Document) InGroup(tag, group string) bool {
	for _, g := range d.groupsByItem[category.Fold(tag)] {
		if g == group {
			return true
		}
	}
	return false
}
