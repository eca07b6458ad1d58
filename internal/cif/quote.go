package cif

import (
	"strings"
	"unicode/utf8"
)

// requiresNewline reports whether v can only be written in the ;-delimited
// multi-line form: it spans lines, or neither quote character can enclose it.
func requiresNewline(v string) bool {
	return strings.ContainsAny(v, "\n\r") || (strings.Contains(v, "' ") && strings.Contains(v, "\" "))
}

// requiresQuote reports whether v would be misread as a structural token or
// split on whitespace when written bare.
func requiresQuote(v string) bool {
	if v == "" {
		return true
	}
	if strings.ContainsAny(v, " \t'\"") {
		return true
	}
	switch v[0] {
	case '_', '#', '$', '[', ']', ';':
		return true
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "data_") || strings.HasPrefix(lower, "save_") {
		return true
	}
	switch lower {
	case "loop_", "stop_", "global_":
		return true
	}
	return false
}

// renderedWidth is the width v occupies in a loop column, quotes included.
func renderedWidth(v string) int {
	n := utf8.RuneCountInString(v)
	if requiresQuote(v) && !requiresNewline(v) {
		n += 2
	}
	return n
}

// formatValue renders v left-justified in width columns, quoting as needed.
func formatValue(v string, width int) string {
	if requiresNewline(v) {
		return "\n;" + v + "\n;\n"
	}
	if requiresQuote(v) {
		if strings.Contains(v, "' ") {
			return padRight(`"`+v+`"`, width)
		}
		return padRight("'"+v+"'", width)
	}
	return padRight(v, width)
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
