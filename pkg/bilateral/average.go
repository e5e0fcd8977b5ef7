package bilateral

import (
	"fmt"
	"reflect"

	apperrors "bioarch/pkg/errors"
)

// Combiner is implemented by types with their own rule for merging two
// present values. Combine is invoked on the left value and must not read
// its receiver.
type Combiner[T any] interface {
	Combine(left, right T) (T, error)
}

// Composite is implemented by value objects that are averaged field by field.
type Composite[T any] interface {
	AverageFields() []Field[T]
}

// Field is one declared averaging slot of a Composite.
type Field[T any] struct {
	name  string
	merge func(dst, left, right *T) error
}

// Name returns the field name used in error messages
func (f Field[T]) Name() string { return f.name }

// Optional declares a field holding an optional value.
func Optional[T, F any](name string, ref func(*T) **F) Field[T] {
	return Field[T]{
		name: name,
		merge: func(dst, left, right *T) error {
			v, err := Average(*ref(left), *ref(right))
			if err != nil {
				return err
			}
			*ref(dst) = v
			return nil
		},
	}
}

// Value declares a field holding a value that is always present.
func Value[T, F any](name string, ref func(*T) *F) Field[T] {
	return Field[T]{
		name: name,
		merge: func(dst, left, right *T) error {
			v, err := Average(ref(left), ref(right))
			if err != nil {
				return err
			}
			if v != nil {
				*ref(dst) = *v
			}
			return nil
		},
	}
}

// Average returns the best-effort combination of two optional values.
func Average[T any](left, right *T) (*T, error) {
	if left == nil {
		return clone(right), nil
	}
	if right == nil {
		return clone(left), nil
	}

	l, r := any(*left), any(*right)
	if !sameType(l, r) {
		return nil, apperrors.NewTypeMismatchError(l, r)
	}
	if l == nil {
		return nil, nil
	}

	if m, ok := mean(l, r); ok {
		v := m.(T)
		return &v, nil
	}

	if c, ok := l.(Combiner[T]); ok {
		v, err := c.Combine(*left, *right)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}

	if c, ok := l.(Composite[T]); ok {
		return averageFields(c.AverageFields(), left, right)
	}

	switch a := l.(type) {
	case string:
		if a == r.(string) {
			return clone(left), nil
		}
		return nil, apperrors.NewDomainValidationError("", fmt.Sprintf("no combination of %q and %q", a, r), r)
	case bool:
		if a == r.(bool) {
			return clone(left), nil
		}
		return nil, apperrors.NewDomainValidationError("", "no combination of true and false", r)
	}

	return nil, apperrors.NewContractViolationError(fmt.Sprintf("%T declares no averaging rule", l))
}

func averageFields[T any](fields []Field[T], left, right *T) (*T, error) {
	dst := *left
	for _, f := range fields {
		if f.merge == nil {
			return nil, apperrors.NewContractViolationError(fmt.Sprintf("%T field %q has no merge rule", dst, f.name))
		}
		if err := f.merge(&dst, left, right); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return &dst, nil
}

func mean(l, r any) (any, bool) {
	switch a := l.(type) {
	case int:
		return midSigned(a, r.(int)), true
	case int8:
		return midSigned(a, r.(int8)), true
	case int16:
		return midSigned(a, r.(int16)), true
	case int32:
		return midSigned(a, r.(int32)), true
	case int64:
		return midSigned(a, r.(int64)), true
	case uint:
		return midUnsigned(a, r.(uint)), true
	case uint8:
		return midUnsigned(a, r.(uint8)), true
	case uint16:
		return midUnsigned(a, r.(uint16)), true
	case uint32:
		return midUnsigned(a, r.(uint32)), true
	case uint64:
		return midUnsigned(a, r.(uint64)), true
	case float32:
		return (a + r.(float32)) / 2, true
	case float64:
		return (a + r.(float64)) / 2, true
	default:
		return nil, false
	}
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// midSigned is (a+b)/2 truncated toward zero, without overflowing N.
func midSigned[N signed](a, b N) N {
	if (a < 0) != (b < 0) {
		return (a + b) / 2
	}
	return a/2 + b/2 + (a%2+b%2)/2
}

// midUnsigned is (a+b)/2 rounded down, without overflowing N.
func midUnsigned[N unsigned](a, b N) N {
	return a/2 + b/2 + (a & b & 1)
}

func sameType(a, b any) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
