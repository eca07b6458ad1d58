package cif

import (
	"bytes"
	"io"
)

// Hook renders content that is not part of the table body. Hooks see the
// table being written but must not modify it.
type Hook func(buf *bytes.Buffer, t *Table) error

// Stats summarizes one rendered document.
type Stats struct {
	Categories int // table-driven blocks
	Loops      int // of which loop_ tables
	Rows       int // loop rows across table-driven blocks
	Derived    int // hook-rendered sections
}

// Writer renders a Table as an mmCIF data block. Head hooks run after the
// data_ line, tail hooks after the last table category; both run only when
// the table has a data_ identifier.
type Writer struct {
	order FieldOrder
	head  []Hook
	tail  []Hook
}

// Option configures a Writer.
type Option func(*Writer)

// WithFieldOrder replaces the canonical field order registry.
func WithFieldOrder(o FieldOrder) Option { return func(w *Writer) { w.order = o } }

// WithHead appends hooks rendered before the table body.
func WithHead(h ...Hook) Option { return func(w *Writer) { w.head = append(w.head, h...) } }

// WithTail appends hooks rendered after the table body.
func WithTail(h ...Hook) Option { return func(w *Writer) { w.tail = append(w.tail, h...) } }

// NewWriter returns a plain table writer using DefaultFieldOrder.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{order: DefaultFieldOrder}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Render returns the complete document. Nothing is returned on error, so a
// failing category never leaves partial output behind.
func (w *Writer) Render(t *Table) ([]byte, Stats, error) {
	var st Stats
	cats, err := t.Categories(w.order)
	if err != nil {
		return nil, st, err
	}

	var buf bytes.Buffer
	outer := t.ID() != ""
	if outer {
		buf.WriteString(DataKey + t.ID() + "\n" + Separator)
		if err := w.run(&buf, t, w.head, &st); err != nil {
			return nil, st, err
		}
	}
	for _, c := range cats {
		if err := writeCategory(&buf, c); err != nil {
			return nil, st, err
		}
		st.Categories++
		if c.IsLoop() {
			st.Loops++
			st.Rows += c.Rows()
		}
	}
	if outer {
		if err := w.run(&buf, t, w.tail, &st); err != nil {
			return nil, st, err
		}
	}
	return buf.Bytes(), st, nil
}

// Write renders t and hands the whole document to dst in a single Write call.
func (w *Writer) Write(dst io.Writer, t *Table) (Stats, error) {
	doc, st, err := w.Render(t)
	if err != nil {
		return st, err
	}
	_, err = dst.Write(doc)
	return st, err
}

func (w *Writer) run(buf *bytes.Buffer, t *Table, hooks []Hook, st *Stats) error {
	for _, h := range hooks {
		if err := h(buf, t); err != nil {
			return err
		}
		st.Derived++
	}
	return nil
}
