// Package errs defines the error taxonomy shared by the mmCIF writer and the
// AF3 entity assembler.
//
// Every condition is a contract or data violation for the document being
// produced; none is transient, so callers surface them rather than retry.
package errs

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure. A Code is itself an error so callers can
// write errors.Is(err, errs.MalformedKey).
type Code string

const (
	// MalformedKey indicates a table key that is not exactly "category.field".
	MalformedKey Code = "malformed-key"
	// InconsistentColumnLength indicates fields of one category disagree on shape or row count.
	InconsistentColumnLength Code = "inconsistent-column-length"
	// UnsupportedValueShape indicates a value that is neither a scalar nor a column.
	UnsupportedValueShape Code = "unsupported-value-shape"
	// LoopValueTooComplex indicates a multi-line value inside a loop row.
	LoopValueTooComplex Code = "loop-value-too-complex"
	// InvalidOrdinal indicates a chain ordinal below 1.
	InvalidOrdinal Code = "invalid-ordinal"
	// InvalidCopyCount indicates a copy count below 1.
	InvalidCopyCount Code = "invalid-copy-count"
	// UnknownMoleculeType indicates a molecule token outside the supported kinds.
	UnknownMoleculeType Code = "unknown-molecule-type"
	// MismatchedInputs indicates parallel inputs of unequal length.
	MismatchedInputs Code = "mismatched-inputs"
	// InvalidInput indicates a semantically invalid job or table file.
	InvalidInput Code = "invalid-input"
)

func (c Code) Error() string { return string(c) }

// Error is a coded failure with the subject that triggered it
// (a category.field name, an ordinal, a token).
type Error struct {
	Code    Code
	Subject string
	Message string
}

// New returns an *Error for code with a formatted message.
func New(code Code, subject, format string, args ...any) *Error {
	return &Error{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := "[" + string(e.Code) + "] " + e.Message
	if e.Subject != "" {
		msg += " (" + e.Subject + ")"
	}
	return msg
}

// Is matches a bare Code or another *Error with the same code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Code:
		return e.Code == t
	case *Error:
		return e.Code == t.Code
	}
	return false
}

// CodeOf returns the code carried anywhere in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return ""
}
