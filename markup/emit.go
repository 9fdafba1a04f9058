// Package markup renders element trees as indented HTML fragments or as
// complete XHTML pages.
package markup

import (
	"strings"

	"figmark/element"
)

// DefaultIndent is a single nesting level.
const DefaultIndent = "  "

// Writer renders element trees as nested markup text.
type Writer struct {
	unit string
}

// NewWriter returns writer indenting every nesting level by requested number
// of spaces.
func NewWriter(spaces int) *Writer {
	return &Writer{unit: strings.Repeat(" ", max(spaces, 0))}
}

// Emit renders element using default two spaces indentation.
func Emit(d *element.Descriptor, indent string) string {
	w := Writer{unit: DefaultIndent}
	return w.Emit(d, indent)
}

// Emit renders element and its children, indent is prepended to every line
// of the element itself.
func (w *Writer) Emit(d *element.Descriptor, indent string) string {
	open := openTag(d)

	switch {
	case d.Void():
		return indent + open
	case d.HasText:
		return indent + open + d.Text + closeTag(d)
	case len(d.Children) == 0:
		return indent + open + closeTag(d)
	}

	lines := make([]string, 0, len(d.Children)+2)
	lines = append(lines, indent+open)
	for _, c := range d.Children {
		lines = append(lines, w.Emit(c, indent+w.unit))
	}
	lines = append(lines, indent+closeTag(d))
	return strings.Join(lines, "\n")
}

func openTag(d *element.Descriptor) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(d.Tag)
	if len(d.Classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(strings.Join(d.Classes, " "))
		b.WriteByte('"')
	}
	for k, v := range d.Attrs.All() {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(v)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

func closeTag(d *element.Descriptor) string {
	return "</" + d.Tag + ">"
}
