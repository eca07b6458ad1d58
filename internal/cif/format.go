package cif

import (
	"bytes"
	"unicode/utf8"

	"foldprep/internal/errs"
)

// Separator terminates every block.
const Separator = "#\n"

// keyMargin is added to the longest field name when aligning key/value blocks;
// it covers the '.' between category and field plus three spaces.
const keyMargin = 4

// writeCategory renders c into buf as a key/value block or a loop_ table,
// followed by the separator line. c must have been validated.
func writeCategory(buf *bytes.Buffer, c Category) error {
	if c.IsLoop() {
		if err := writeLoop(buf, c); err != nil {
			return err
		}
	} else {
		writeSingle(buf, c)
	}
	buf.WriteString(Separator)
	return nil
}

func writeSingle(buf *bytes.Buffer, c Category) {
	longest := 0
	for _, f := range c.Fields {
		if n := utf8.RuneCountInString(f.Name); n > longest {
			longest = n
		}
	}
	width := utf8.RuneCountInString(c.Name) + longest + keyMargin
	for _, f := range c.Fields {
		v := f.Value.At(0)
		buf.WriteString(padRight(c.Name+"."+f.Name, width))
		buf.WriteString(formatValue(v, utf8.RuneCountInString(v)))
		buf.WriteByte('\n')
	}
}

func writeLoop(buf *bytes.Buffer, c Category) error {
	widths := make([]int, len(c.Fields))
	for i, f := range c.Fields {
		for row := 0; row < c.rows; row++ {
			v := f.Value.At(row)
			if requiresNewline(v) {
				return errs.New(errs.LoopValueTooComplex, c.Name+"."+f.Name,
					"row %d needs multi-line quoting, which loop rows cannot hold", row+1)
			}
			if w := renderedWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}
	buf.WriteString("loop_\n")
	for _, f := range c.Fields {
		buf.WriteString(c.Name + "." + f.Name + "\n")
	}
	for row := 0; row < c.rows; row++ {
		for i, f := range c.Fields {
			buf.WriteString(formatValue(f.Value.At(row), widths[i]+1))
		}
		buf.WriteByte('\n')
	}
	return nil
}
