package cif

import (
	"fmt"

	"foldprep/internal/errs"
)

type shape uint8

const (
	shapeInvalid shape = iota
	shapeScalar
	shapeColumn
)

// Value is the content of one table slot: either a single string (Scalar) or a
// column of strings (Column). The zero Value is invalid and fails rendering
// with errs.UnsupportedValueShape.
type Value struct {
	shape  shape
	scalar string
	column []string
}

// Scalar wraps a single value.
func Scalar(s string) Value { return Value{shape: shapeScalar, scalar: s} }

// Column wraps a sequence of values. The slice is copied.
func Column(vs ...string) Value {
	return Value{shape: shapeColumn, column: append(make([]string, 0, len(vs)), vs...)}
}

// IsColumn reports whether v holds a sequence.
func (v Value) IsColumn() bool { return v.shape == shapeColumn }

// Valid reports whether v is a Scalar or a Column.
func (v Value) Valid() bool { return v.shape != shapeInvalid }

// Len is 1 for a scalar and the element count for a column.
func (v Value) Len() int {
	if v.shape == shapeColumn {
		return len(v.column)
	}
	return 1
}

// At returns element i of a column, or the scalar itself.
func (v Value) At(i int) string {
	if v.shape == shapeColumn {
		return v.column[i]
	}
	return v.scalar
}

// Strings returns the values as a fresh slice (a scalar yields one element).
func (v Value) Strings() []string {
	switch v.shape {
	case shapeColumn:
		return append([]string(nil), v.column...)
	case shapeScalar:
		return []string{v.scalar}
	}
	return nil
}

func (v Value) appendTo(w string) Value {
	if v.shape != shapeColumn {
		return Column(w)
	}
	v.column = append(v.column, w)
	return v
}

// ValueOf converts a loosely typed value (decoded YAML/JSON, caller maps) into a
// Value. Accepted shapes are string, fmt.Stringer, numbers and bools rendered
// with %v, and slices of those. Anything else fails with errs.UnsupportedValueShape.
func ValueOf(key string, raw any) (Value, error) {
	switch x := raw.(type) {
	case Value:
		if !x.Valid() {
			return Value{}, errs.New(errs.UnsupportedValueShape, key, "empty value")
		}
		return x, nil
	case string:
		return Scalar(x), nil
	case []string:
		return Column(x...), nil
	case []any:
		col := make([]string, 0, len(x))
		for i, el := range x {
			s, ok := scalarString(el)
			if !ok {
				return Value{}, errs.New(errs.UnsupportedValueShape, key, "element %d has type %T", i, el)
			}
			col = append(col, s)
		}
		return Column(col...), nil
	}
	if s, ok := scalarString(raw); ok {
		return Scalar(s), nil
	}
	return Value{}, errs.New(errs.UnsupportedValueShape, key, "value has type %T", raw)
}

func scalarString(raw any) (string, bool) {
	switch x := raw.(type) {
	case string:
		return x, true
	case fmt.Stringer:
		return x.String(), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return fmt.Sprint(x), true
	}
	return "", false
}
