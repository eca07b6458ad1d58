package cif

import (
	"strconv"
	"strings"

	"foldprep/internal/errs"
)

// DataKey is the reserved key carrying the data block identifier.
const DataKey = "data_"

// Table is the ordered "category.field" -> Value mapping the writer renders.
// Keys keep their first insertion position; the data_ identifier is kept
// apart from the body keys.
type Table struct {
	id   string
	keys []string
	vals map[string]Value
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{vals: map[string]Value{}}
}

// ID is the data block identifier ("" when unset).
func (t *Table) ID() string { return t.id }

// SetID sets the data block identifier.
func (t *Table) SetID(id string) { t.id = id }

// Set stores v under key. Setting DataKey with a scalar sets the identifier.
func (t *Table) Set(key string, v Value) {
	if key == DataKey && v.shape == shapeScalar {
		t.id = v.scalar
		return
	}
	if _, ok := t.vals[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.vals[key] = v
}

// Append adds one element to the column under key, creating it if needed.
func (t *Table) Append(key, val string) {
	v, ok := t.vals[key]
	if !ok {
		t.keys = append(t.keys, key)
	}
	t.vals[key] = v.appendTo(val)
}

// Get returns the value under key.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.vals[key]
	return v, ok
}

// Keys returns the body keys in insertion order.
func (t *Table) Keys() []string { return append([]string(nil), t.keys...) }

// Len is the number of body keys.
func (t *Table) Len() int { return len(t.keys) }

// Merge copies every key of o into t, in o's order. o's identifier wins when set.
func (t *Table) Merge(o *Table) {
	if o.id != "" {
		t.id = o.id
	}
	for _, k := range o.keys {
		t.Set(k, o.vals[k])
	}
}

// Field is one named value inside a category.
type Field struct {
	Name  string
	Value Value
}

// Category groups the fields sharing a "_category." prefix.
type Category struct {
	Name   string
	Fields []Field
	rows   int
	loop   bool
}

// Rows is the validated row count (1 for key/value blocks).
func (c Category) Rows() int { return c.rows }

// IsLoop reports whether the category renders as a loop_ table.
func (c Category) IsLoop() bool { return c.loop }

// SplitKey splits "category.field" on its only '.'.
func SplitKey(key string) (category, field string, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errs.New(errs.MalformedKey, key, "key must contain exactly one '.', found %d", len(parts)-1)
	}
	return parts[0], parts[1], nil
}

// Categories groups the body keys by category in first-seen order, applies
// the field order registry, and validates every category's shape. It is the
// single validation point before rendering.
func (t *Table) Categories(order FieldOrder) ([]Category, error) {
	index := map[string]int{}
	var cats []Category
	for _, key := range t.keys {
		cat, field, err := SplitKey(key)
		if err != nil {
			return nil, err
		}
		i, ok := index[cat]
		if !ok {
			i = len(cats)
			index[cat] = i
			cats = append(cats, Category{Name: cat})
		}
		cats[i].Fields = append(cats[i].Fields, Field{Name: field, Value: t.vals[key]})
	}
	for i := range cats {
		order.Apply(&cats[i])
		if err := cats[i].validate(); err != nil {
			return nil, err
		}
	}
	return cats, nil
}

// validate uses the first field as the shape sample: when it is a column every
// field must be a column of the same length, when it is a scalar every field
// must be a scalar.
func (c *Category) validate() error {
	for _, f := range c.Fields {
		if !f.Value.Valid() {
			return errs.New(errs.UnsupportedValueShape, c.Name+"."+f.Name, "value is neither a scalar nor a column")
		}
	}
	sample := c.Fields[0].Value
	for _, f := range c.Fields[1:] {
		v := f.Value
		if v.IsColumn() != sample.IsColumn() || (sample.IsColumn() && v.Len() != sample.Len()) {
			return errs.New(errs.InconsistentColumnLength, c.Name+"."+f.Name,
				"field has %s, first field %s has %s", describe(v), c.Fields[0].Name, describe(sample))
		}
	}
	c.rows = sample.Len()
	c.loop = sample.IsColumn() && sample.Len() != 1
	return nil
}

func describe(v Value) string {
	if v.IsColumn() {
		if v.Len() == 1 {
			return "1 value"
		}
		return strconv.Itoa(v.Len()) + " values"
	}
	return "a scalar"
}
