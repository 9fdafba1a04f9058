// Package debug has helpers producing human readable dumps of internal
// structures for debug reports.
package debug

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

const indentUnit = "  "

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString(indentUnit)
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value under label, empty values are left as is.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Pairs writes key=value list on a single line, nothing is written for empty
// sequences.
func (tw TreeWriter) Pairs(depth int, label string, pairs iter.Seq2[string, string]) {
	var parts []string
	for k, v := range pairs {
		parts = append(parts, k+"="+encodeText(v))
	}
	if len(parts) == 0 {
		return
	}
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(strings.Join(parts, " "))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
