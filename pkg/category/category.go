// Package category implements closed, ordered sets of named variants that
// survey fields are parsed into.
//
// # Overview
//
// A Set describes one enumerated category type: its variants in rank order,
// and the vocabulary of raw strings that resolve to them. Every Set accepts
// the canonical variant names, the display labels, the numeric ranks (as
// numbers or strings) and whatever aliases its Lexicon declares. Lexicon
// strings listed as absent resolve to no value. Matching is case-insensitive
// and ignores surrounding whitespace.
//
// Absent values are represented by nil pointers and sort before every variant.
//
// # Usage
//
//	var Sexes = category.MustSet("Sex", []category.Variant[Sex]{
//		{Value: SexFemale, Name: "FEMALE", Rank: 0},
//		{Value: SexMale, Name: "MALE", Rank: 100},
//	}, lexicon)
//
//	s, err := Sexes.Parse("m?")
//	slices.SortFunc(values, Sexes.Compare)
package category

import (
	"cmp"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	apperrors "bioarch/pkg/errors"
)

// Variant describes one member of a category type.
type Variant[T ~int] struct {
	Value T
	Name  string
	Rank  float64
	// Label is an optional human-readable form accepted by Parse and used by Label.
	Label string
}

// Lexicon is the versioned vocabulary attached to a category type.
type Lexicon struct {
	// Aliases maps raw strings to canonical variant names.
	Aliases map[string]string
	// Absent lists raw strings that mean "no value".
	Absent []string
	// Booleans lets true and false resolve to the ranks 1 and 0.
	Booleans bool
}

// Set is an immutable category type description. It is safe for concurrent use.
type Set[T ~int] struct {
	typeName string
	variants []Variant[T]
	index    map[T]int
	lookup   map[string]T
	absent   map[string]struct{}
	booleans bool
}

// Fold normalises a raw vocabulary string for lookup.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// FormatRank renders a rank the way it is accepted back by Parse.
func FormatRank(rank float64) string {
	return strconv.FormatFloat(rank, 'f', -1, 64)
}

// NewSet builds a Set. Ranks, values and names must be unique, and every
// alias must name a declared variant.
func NewSet[T ~int](typeName string, variants []Variant[T], lex Lexicon) (*Set[T], error) {
	if len(variants) == 0 {
		return nil, apperrors.NewContractViolationError(fmt.Sprintf("%s declares no variants", typeName))
	}

	ordered := make([]Variant[T], len(variants))
	copy(ordered, variants)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Rank < ordered[j].Rank })

	s := &Set[T]{
		typeName: typeName,
		variants: ordered,
		index:    make(map[T]int, len(ordered)),
		lookup:   make(map[string]T),
		absent:   make(map[string]struct{}),
		booleans: lex.Booleans,
	}

	ranks := make(map[float64]string, len(ordered))
	byName := make(map[string]T, len(ordered))
	for i, v := range ordered {
		if v.Name == "" {
			return nil, apperrors.NewContractViolationError(fmt.Sprintf("%s has a variant without a name", typeName))
		}
		if prev, dup := ranks[v.Rank]; dup {
			return nil, apperrors.NewContractViolationError(
				fmt.Sprintf("%s: %s and %s share rank %s", typeName, prev, v.Name, FormatRank(v.Rank)))
		}
		if _, dup := s.index[v.Value]; dup {
			return nil, apperrors.NewContractViolationError(fmt.Sprintf("%s: duplicate value for %s", typeName, v.Name))
		}
		ranks[v.Rank] = v.Name
		s.index[v.Value] = i
		byName[v.Name] = v.Value

		for _, key := range []string{v.Name, v.Label, FormatRank(v.Rank)} {
			if key == "" {
				continue
			}
			if err := s.register(key, v.Value); err != nil {
				return nil, err
			}
		}
	}

	aliases := make([]string, 0, len(lex.Aliases))
	for raw := range lex.Aliases {
		aliases = append(aliases, raw)
	}
	sort.Strings(aliases)
	for _, raw := range aliases {
		target, ok := byName[lex.Aliases[raw]]
		if !ok {
			return nil, apperrors.NewContractViolationError(
				fmt.Sprintf("%s: alias %q points at unknown variant %q", typeName, raw, lex.Aliases[raw]))
		}
		if err := s.register(raw, target); err != nil {
			return nil, err
		}
	}

	for _, raw := range lex.Absent {
		key := Fold(raw)
		if _, clash := s.lookup[key]; clash {
			return nil, apperrors.NewContractViolationError(
				fmt.Sprintf("%s: %q is both a variant and an absent marker", typeName, raw))
		}
		s.absent[key] = struct{}{}
	}

	return s, nil
}

// MustSet is like NewSet but panics on an invalid declaration.
func MustSet[T ~int](typeName string, variants []Variant[T], lex Lexicon) *Set[T] {
	s, err := NewSet(typeName, variants, lex)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set[T]) register(raw string, v T) error {
	key := Fold(raw)
	if prev, ok := s.lookup[key]; ok && prev != v {
		return apperrors.NewContractViolationError(
			fmt.Sprintf("%s: %q resolves to both %s and %s", s.typeName, raw, s.Name(prev), s.Name(v)))
	}
	s.lookup[key] = v
	return nil
}

// TypeName returns the category type name used in errors
func (s *Set[T]) TypeName() string { return s.typeName }

// Valid reports whether v is a declared variant
func (s *Set[T]) Valid(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Name returns the canonical name of v
func (s *Set[T]) Name(v T) string {
	if i, ok := s.index[v]; ok {
		return s.variants[i].Name
	}
	return fmt.Sprintf("%s(%d)", s.typeName, int(v))
}

// Label returns the display label of v, falling back to its name.
func (s *Set[T]) Label(v T) string {
	if i, ok := s.index[v]; ok && s.variants[i].Label != "" {
		return s.variants[i].Label
	}
	return s.Name(v)
}

// Rank returns the numeric rank of v
func (s *Set[T]) Rank(v T) float64 {
	if i, ok := s.index[v]; ok {
		return s.variants[i].Rank
	}
	return 0
}

// Variants returns the declared values in rank order.
func (s *Set[T]) Variants() []T {
	out := make([]T, len(s.variants))
	for i, v := range s.variants {
		out[i] = v.Value
	}
	return out
}

// Vocabulary returns every accepted raw string in folded form, sorted.
func (s *Set[T]) Vocabulary() []string {
	out := make([]string, 0, len(s.lookup)+len(s.absent))
	for k := range s.lookup {
		out = append(out, k)
	}
	for k := range s.absent {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FromRank returns the variant with the given rank.
func (s *Set[T]) FromRank(rank float64) (T, error) {
	for _, v := range s.variants {
		if v.Rank == rank {
			return v.Value, nil
		}
	}
	var zero T
	return zero, apperrors.NewParseError(s.typeName, rank)
}

// Parse resolves a raw survey value. nil and absent markers give nil;
// variants, names, labels, aliases and ranks give the matching variant;
// anything else is a ParseError.
func (s *Set[T]) Parse(raw interface{}) (*T, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case T:
		if !s.Valid(v) {
			return nil, apperrors.NewParseError(s.typeName, int(v))
		}
		return &v, nil
	case *T:
		if v == nil {
			return nil, nil
		}
		return s.Parse(*v)
	case string:
		return s.parseString(v)
	case bool:
		if !s.booleans {
			return nil, apperrors.NewParseError(s.typeName, v)
		}
		rank := 0.0
		if v {
			rank = 1
		}
		return s.fromRank(rank, raw)
	}

	if f, ok := numeric(raw); ok {
		return s.fromRank(f, raw)
	}
	return nil, apperrors.NewParseError(s.typeName, raw)
}

// MustParse is like Parse but panics on error. Intended for literals in tests and tables.
func (s *Set[T]) MustParse(raw interface{}) *T {
	v, err := s.Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *Set[T]) parseString(raw string) (*T, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, apperrors.NewParseError(s.typeName, raw)
	}
	key := Fold(trimmed)
	if _, ok := s.absent[key]; ok {
		return nil, nil
	}
	if v, ok := s.lookup[key]; ok {
		return &v, nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return s.fromRank(f, raw)
	}
	return nil, apperrors.NewParseError(s.typeName, raw)
}

func (s *Set[T]) fromRank(rank float64, raw interface{}) (*T, error) {
	v, err := s.FromRank(rank)
	if err != nil {
		return nil, apperrors.NewParseError(s.typeName, raw)
	}
	return &v, nil
}

// Compare orders two optional values by rank; nil sorts first.
// It has the signature slices.SortFunc expects.
func (s *Set[T]) Compare(a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(s.Rank(*a), s.Rank(*b))
}

// CompareAny orders a against a loosely typed operand. Numbers are coerced by
// rank and fail with a ParseError when no variant has that rank; strings and
// other types fail with a TypeComparisonError.
func (s *Set[T]) CompareAny(a *T, other interface{}) (int, error) {
	var b *T
	switch v := other.(type) {
	case nil:
	case T:
		b = &v
	case *T:
		b = v
	default:
		f, ok := numeric(other)
		if !ok {
			return 0, apperrors.NewTypeComparisonError(s.typeName, other)
		}
		r, err := s.fromRank(f, other)
		if err != nil {
			return 0, err
		}
		b = r
	}
	return s.Compare(a, b), nil
}

func numeric(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
