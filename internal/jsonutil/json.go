// Package jsonutil writes indented JSON documents.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"io"
)

// EncodePretty writes v as two-space indented JSON to w, followed by a
// newline. HTML characters are not escaped.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// MarshalPretty is EncodePretty into a fresh buffer.
func MarshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePretty(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
