package osteology

import (
	"log/slog"

	"bioarch/internal/vocabulary"
	"bioarch/pkg/bilateral"
	"bioarch/pkg/category"
	"bioarch/pkg/contracts/row"
)

var vocab = vocabulary.Default()

func lexicon(typeName string) category.Lexicon {
	return vocab.Lexicon(typeName)
}

// categoryValue returns the ordered-category cell for v.
func categoryValue[T ~int](set *category.Set[T], v *T) row.Value {
	if v == nil {
		return row.Absent()
	}
	return row.Category(set.Name(*v), set.Rank(*v))
}

// setCategory writes <key>_cat and <key>_val.
func setCategory[T ~int](r *row.Row, key string, set *category.Set[T], v *T) {
	if v == nil {
		r.Set(key+"_cat", row.Absent())
		r.Set(key+"_val", row.Absent())
		return
	}
	r.Set(key+"_cat", categoryValue(set, v))
	r.Set(key+"_val", row.Number(set.Rank(*v)))
}

// setCategoryPair writes the left, right and avg category columns of a pair
// and returns the average cell. Sides that cannot be combined leave the avg
// columns absent.
func setCategoryPair[T ~int](r *row.Row, key string, set *category.Set[T], p bilateral.Pair[T]) row.Value {
	setCategory(r, key+"_left", set, p.Left())
	setCategory(r, key+"_right", set, p.Right())

	avg, err := p.Avg()
	if err != nil {
		slog.Debug("bilateral sides have no common value",
			slog.String("column", key),
			slog.String("pair", p.String()),
			slog.String("error", err.Error()))
		avg = nil
	}
	setCategory(r, key+"_avg", set, avg)
	return categoryValue(set, avg)
}
