// Package stylesheet collects declarations for every element of a tree,
// groups them by selector and renders CSS text.
package stylesheet

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"figmark/element"
	"figmark/style"
)

// Sheet maps selectors to declaration sets keeping first seen order.
type Sheet struct {
	order []string
	rules map[string]*Set
}

// New returns empty sheet.
func New() *Sheet {
	return &Sheet{rules: make(map[string]*Set)}
}

// Add merges declarations into selector rule creating it when necessary.
func (s *Sheet) Add(selector string, decls ...string) *Set {
	set, ok := s.rules[selector]
	if !ok {
		set = newSet()
		s.rules[selector] = set
		s.order = append(s.order, selector)
	}
	for _, d := range decls {
		set.Add(d)
	}
	return set
}

// Rule returns declarations for selector or nil.
func (s *Sheet) Rule(selector string) *Set {
	return s.rules[selector]
}

// Selectors returns selectors in first seen order.
func (s *Sheet) Selectors() []string {
	return append([]string(nil), s.order...)
}

// WriteTo writes non-empty rules to w in first seen order separated by blank
// lines, implementing io.WriterTo. Declarations keep insertion order.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	first := true
	for _, sel := range s.order {
		set := s.rules[sel]
		if set.Len() == 0 {
			continue
		}
		if !first {
			n, err := fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		first = false

		n, err := writeRule(w, sel, set)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the sheet.
func (s *Sheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, sel string, set *Set) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", sel)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, set)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeProperties writes declarations in insertion order.
func writeProperties(w io.Writer, set *Set) (int, error) {
	var total int
	for _, decl := range set.items {
		n, err := fmt.Fprintf(w, "  %s;\n", decl)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// placement is an element together with its parent, parent is nil for root.
type placement struct {
	el     *element.Descriptor
	parent *element.Descriptor
}

// Builder walks element trees collecting their styles.
type Builder struct {
	mapper *style.Mapper
	log    *zap.Logger
}

// NewBuilder returns builder, nil logger is allowed.
func NewBuilder(mapper *style.Mapper, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	if mapper == nil {
		mapper = style.NewMapper(log)
	}
	return &Builder{mapper: mapper, log: log.Named("stylesheet")}
}

// Build collects styles of the whole tree. Elements sharing selector share
// single rule. When element is absolutely positioned its frame parent is made
// relative so offsets are resolved against it.
func (b *Builder) Build(root *element.Descriptor) *Sheet {
	sheet := New()

	var (
		absolute []string
		seenAbs  = make(map[string]struct{})
		index    = make(map[string][]placement)
	)

	root.Walk(func(d, parent *element.Descriptor) {
		sel := d.Selector()
		if sel == "" {
			if d.Source != nil {
				if decls := b.mapper.Map(d.Source); len(decls) > 0 {
					b.log.Debug("Element has no selector, declarations dropped",
						zap.String("node", d.Source.ID), zap.String("name", d.Source.Name), zap.Strings("declarations", decls))
				}
			}
			return
		}
		index[sel] = append(index[sel], placement{el: d, parent: parent})

		set := sheet.Add(sel)
		if d.Source == nil {
			return
		}
		for _, decl := range b.mapper.Map(d.Source) {
			set.Add(decl)
		}
		if set.Has(style.DeclPositionAbsolute) {
			if _, ok := seenAbs[sel]; !ok {
				seenAbs[sel] = struct{}{}
				absolute = append(absolute, sel)
			}
		}
	})

	for _, sel := range absolute {
		b.makeParentRelative(sheet, sel, index[sel])
	}
	return sheet
}

// makeParentRelative corrects only the first suitable parent found in
// document order. Elements sharing selector under different parents are
// left alone.
func (b *Builder) makeParentRelative(sheet *Sheet, sel string, placements []placement) {
	for _, p := range placements {
		if p.parent == nil || p.parent.Source == nil || !p.parent.Source.IsContainer() {
			continue
		}
		parentSel := p.parent.Selector()
		if parentSel == "" {
			continue
		}
		sheet.Add(parentSel, style.DeclPositionRelative)
		if len(placements) > 1 {
			b.log.Debug("Absolute selector is shared, only first parent made relative",
				zap.String("selector", sel), zap.String("parent", parentSel), zap.Int("elements", len(placements)))
		}
		return
	}
}
