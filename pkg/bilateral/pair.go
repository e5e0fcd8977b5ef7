package bilateral

import (
	"fmt"
	"reflect"

	apperrors "bioarch/pkg/errors"
)

// Pair holds the left and right observation of one anatomical structure.
// Either side may be missing. The zero value is an empty pair.
type Pair[T any] struct {
	left  *T
	right *T
}

// New builds a pair. Both sides must hold the same dynamic type.
func New[T any](left, right *T) (Pair[T], error) {
	if left != nil && right != nil && !sameType(any(*left), any(*right)) {
		return Pair[T]{}, apperrors.NewTypeMismatchError(any(*left), any(*right))
	}
	return Pair[T]{left: clone(left), right: clone(right)}, nil
}

// Empty returns a pair with neither side recorded
func Empty[T any]() Pair[T] {
	return Pair[T]{}
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Left returns a copy of the left side
func (p Pair[T]) Left() *T { return clone(p.left) }

// Right returns a copy of the right side
func (p Pair[T]) Right() *T { return clone(p.right) }

// IsEmpty reports whether neither side is recorded
func (p Pair[T]) IsEmpty() bool { return p.left == nil && p.right == nil }

// Avg reduces the pair with Average.
func (p Pair[T]) Avg() (*T, error) {
	return Average(p.left, p.right)
}

// AverageFields makes pairs of pairs average side by side.
func (p Pair[T]) AverageFields() []Field[Pair[T]] {
	return []Field[Pair[T]]{
		Optional("left", func(p *Pair[T]) **T { return &p.left }),
		Optional("right", func(p *Pair[T]) **T { return &p.right }),
	}
}

// Equal reports whether both sides are pairwise equal.
func (p Pair[T]) Equal(other Pair[T]) bool {
	return equalPtr(p.left, other.left) && equalPtr(p.right, other.right)
}

// EqualValue compares against a loosely typed operand. nil is never equal;
// anything other than a Pair[T] is a contract violation.
func (p Pair[T]) EqualValue(other interface{}) (bool, error) {
	switch o := other.(type) {
	case nil:
		return false, nil
	case Pair[T]:
		return p.Equal(o), nil
	case *Pair[T]:
		if o == nil {
			return false, nil
		}
		return p.Equal(*o), nil
	default:
		return false, apperrors.NewContractViolationError(fmt.Sprintf("cannot compare %T with %T", p, other))
	}
}

// String renders the pair as (left, right) with - for a missing side.
func (p Pair[T]) String() string {
	return fmt.Sprintf("(%s, %s)", side(p.left), side(p.right))
}

func side[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

type equaler[T any] interface {
	Equal(T) bool
}

func equalPtr[T any](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if e, ok := any(*a).(equaler[T]); ok {
		return e.Equal(*b)
	}
	return reflect.DeepEqual(*a, *b)
}
