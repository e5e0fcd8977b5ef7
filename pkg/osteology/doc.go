// Package osteology models a burial record as recorded on the survey forms:
// ordered category types (sex, age, joint condition, trauma, bearing,
// position, presence), the composite sections built from them, and the
// Individual that ties one record together.
//
// Every section is an immutable value built through a constructor that
// parses the raw survey values and validates them. Paired anatomical
// structures are held in bilateral pairs and reduced with bilateral.Average.
//
// Each section flattens itself with ToRow into a fixed set of columns. The
// column names are a contract with downstream analysis: misspellings kept
// from the original survey sheets (sacro_illiac, vertabrae, abcess and
// several muscle names) are deliberate. Missing data is written as absent
// cells rather than dropped columns, so every row of a frame has the same
// columns.
package osteology
