// Package common keeps enumerations shared by configuration and command line
// handling so neither has to import the other.
package common

// Produced markup flavor.
// ENUM(html, xhtml)
type MarkupFormat int

// Ext returns file extension for markup output.
func (f MarkupFormat) Ext() string {
	switch f {
	case MarkupFormatHtml:
		return ".html"
	case MarkupFormatXhtml:
		return ".xhtml"
	default:
		// this should never happen
		panic("unsupported markup format requested")
	}
}

// Standalone reports whether format produces complete document rather than
// bare fragment.
func (f MarkupFormat) Standalone() bool {
	return f == MarkupFormatXhtml
}
