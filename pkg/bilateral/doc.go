// Package bilateral pairs left and right observations of the same anatomical
// structure and reduces a pair to one representative value.
//
// # Overview
//
// Field staff often record only one side of a skeleton. Pair keeps both
// sides as optional values and Average combines them with a single
// best-effort policy:
//
//  1. A missing side defers to the other. Two missing sides give no value.
//  2. Go integer and float kinds are averaged arithmetically. Integer means
//     truncate toward zero.
//  3. A type implementing Combiner supplies its own rule, which is returned
//     verbatim. Ordinal scales use this to avoid interpolating between
//     categories.
//  4. A type implementing Composite is averaged field by field over the
//     declared field list and rebuilt. Fields that are not declared are
//     copied from the left value.
//  5. Equal strings and booleans pass through. Differing ones have no
//     representative value and fail with a domain validation error.
//  6. Anything else is a contract violation in the value-object definition.
//
// Values of different dynamic types (possible only when T is an interface
// type) fail with a type mismatch error, both on construction and when
// averaging.
//
// # Architecture
//
// Dispatch is static: a type opts into rule 3 or 4 by implementing an
// interface on its value receiver. Composite field lists are built with the
// Optional and Value helpers, which take accessor functions instead of
// inspecting struct layouts at runtime:
//
//	func (m LongBoneMeasurement) AverageFields() []bilateral.Field[LongBoneMeasurement] {
//		return []bilateral.Field[LongBoneMeasurement]{
//			bilateral.Optional("max", func(m *LongBoneMeasurement) **float64 { return &m.Max }),
//			bilateral.Optional("head", func(m *LongBoneMeasurement) **float64 { return &m.Head }),
//		}
//	}
//
// Pair is itself a Composite, so records holding pairs average side by side.
//
// # Usage
//
//	femur, err := bilateral.New(left, right)
//	if err != nil {
//		return err
//	}
//	avg, err := femur.Avg()
//
// All functions are pure and safe for concurrent use. Results never alias
// the inputs.
package bilateral
