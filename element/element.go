// Package element builds intermediate element tree out of scene nodes. Every
// element keeps reference to the node it came from so styles could be computed
// later.
package element

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"figmark/naming"
	"figmark/scene"
)

const (
	// DefaultImagePlaceholder is used as img source when label does not
	// specify one.
	DefaultImagePlaceholder = "images/placeholder.png"

	jsClassPrefix = "js-"
)

// Descriptor is a single element of the generated document.
type Descriptor struct {
	Tag      string
	Classes  []string
	Attrs    *naming.Attributes
	Children []*Descriptor
	Text     string
	HasText  bool
	Source   *scene.Node
}

// Void reports whether element never has content.
func (d *Descriptor) Void() bool {
	return d.Tag == "img" || d.Tag == "input"
}

// Selector returns stylesheet key for the element: classes (without
// scripting hooks) or tag name. Pictures without classes do not get a rule.
func (d *Descriptor) Selector() string {
	return Selector(d.Tag, d.Classes)
}

// Selector derives stylesheet key from tag and classes.
func Selector(tag string, classes []string) string {
	if len(classes) > 0 {
		var b strings.Builder
		for _, c := range classes {
			if strings.HasPrefix(c, jsClassPrefix) {
				continue
			}
			b.WriteByte('.')
			b.WriteString(c)
		}
		return b.String()
	}
	if tag == "picture" {
		return ""
	}
	return tag
}

// Walk visits element and its descendants in pre-order, parent is nil for
// the starting element.
func (d *Descriptor) Walk(fn func(d, parent *Descriptor)) {
	d.walk(nil, fn)
}

func (d *Descriptor) walk(parent *Descriptor, fn func(d, parent *Descriptor)) {
	fn(d, parent)
	for _, c := range d.Children {
		c.walk(d, fn)
	}
}

// Builder converts scene nodes into element trees.
type Builder struct {
	placeholder string
}

// NewBuilder returns builder, empty placeholder selects default one.
func NewBuilder(placeholder string) *Builder {
	if placeholder == "" {
		placeholder = DefaultImagePlaceholder
	}
	return &Builder{placeholder: placeholder}
}

// Build returns element tree for the node and all its descendants.
func (b *Builder) Build(n *scene.Node) *Descriptor {
	name := naming.Parse(n.Name)

	d := &Descriptor{
		Tag:     name.Tag,
		Classes: name.Classes,
		Attrs:   name.Attrs,
		Source:  n,
	}
	if n.IsText() {
		d.HasText = true
		if n.Text != nil {
			d.Text = norm.NFC.String(n.Text.Characters)
		}
	}

	if d.Tag == "img" {
		d.Attrs = b.imageAttrs(name.Attrs, n)
		return d
	}

	children := n.Children()
	if len(children) > 0 {
		d.Children = make([]*Descriptor, 0, len(children))
	}
	for _, c := range children {
		d.Children = append(d.Children, b.Build(c))
	}
	return d
}

// imageAttrs replaces whatever label specified with the fixed img attribute
// set.
func (b *Builder) imageAttrs(parsed *naming.Attributes, n *scene.Node) *naming.Attributes {
	attrs := naming.NewAttributes()
	if src, ok := parsed.Get("src"); ok {
		attrs.Set("src", src)
	} else {
		attrs.Set("src", b.placeholder)
	}
	attrs.Set("width", strconv.Itoa(scene.Round(n.Width)))
	attrs.Set("height", strconv.Itoa(scene.Round(n.Height)))
	if alt, ok := parsed.Get("alt"); ok {
		attrs.Set("alt", alt)
	}
	return attrs
}
