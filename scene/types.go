// Package scene describes design-tool scene graph as it is supplied by the
// host: a tree of nodes with geometry, optional auto-layout, text and paint
// facets. Nothing in this package is ever mutated during generation.
package scene

import (
	"math"
	"slices"
)

// Kind is a host node type.
type Kind string

const (
	KindDocument         Kind = "DOCUMENT"
	KindPage             Kind = "PAGE"
	KindFrame            Kind = "FRAME"
	KindGroup            Kind = "GROUP"
	KindSection          Kind = "SECTION"
	KindComponent        Kind = "COMPONENT"
	KindComponentSet     Kind = "COMPONENT_SET"
	KindInstance         Kind = "INSTANCE"
	KindText             Kind = "TEXT"
	KindRectangle        Kind = "RECTANGLE"
	KindEllipse          Kind = "ELLIPSE"
	KindLine             Kind = "LINE"
	KindPolygon          Kind = "POLYGON"
	KindStar             Kind = "STAR"
	KindVector           Kind = "VECTOR"
	KindBooleanOperation Kind = "BOOLEAN_OPERATION"
)

// Direction of auto-layout primary axis.
type Direction string

const (
	DirectionHorizontal Direction = "HORIZONTAL"
	DirectionVertical   Direction = "VERTICAL"
)

// SizingMode of auto-layout container along one of its axis.
type SizingMode string

const (
	SizingFixed SizingMode = "FIXED"
	SizingAuto  SizingMode = "AUTO"
)

// ItemSizing is how a child sizes itself inside auto-layout parent.
type ItemSizing string

const (
	ItemSizingFixed ItemSizing = "FIXED"
	ItemSizingHug   ItemSizing = "HUG"
	ItemSizingFill  ItemSizing = "FILL"
)

// Alignment values used by both axis alignments and child self-alignment.
type Alignment string

const (
	AlignMin          Alignment = "MIN"
	AlignCenter       Alignment = "CENTER"
	AlignMax          Alignment = "MAX"
	AlignSpaceBetween Alignment = "SPACE_BETWEEN"
	AlignBaseline     Alignment = "BASELINE"
	AlignStretch      Alignment = "STRETCH"
	AlignInherit      Alignment = "INHERIT"
)

// Positioning of a child inside auto-layout parent.
type Positioning string

const (
	PositioningAuto     Positioning = "AUTO"
	PositioningAbsolute Positioning = "ABSOLUTE"
)

// Wrap mode of auto-layout container.
type Wrap string

const (
	WrapNone Wrap = "NO_WRAP"
	WrapWrap Wrap = "WRAP"
)

// PaintType is a kind of fill.
type PaintType string

const (
	PaintSolid           PaintType = "SOLID"
	PaintImage           PaintType = "IMAGE"
	PaintVideo           PaintType = "VIDEO"
	PaintGradientLinear  PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial  PaintType = "GRADIENT_RADIAL"
	PaintGradientAngular PaintType = "GRADIENT_ANGULAR"
	PaintGradientDiamond PaintType = "GRADIENT_DIAMOND"
)

// Unit of typography measure.
type Unit string

const (
	UnitPixels  Unit = "PIXELS"
	UnitPercent Unit = "PERCENT"
	UnitAuto    Unit = "AUTO"
)

// Layout is auto-layout container facet. Present only on nodes which arrange
// their children.
type Layout struct {
	Mode          Direction
	PrimarySizing SizingMode
	CounterSizing SizingMode
	PrimaryAlign  Alignment
	CounterAlign  Alignment
	ItemSpacing   float64
	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingLeft   float64
	Wrap          Wrap // empty when host does not report it
}

// Item describes how node participates in auto-layout of its parent.
type Item struct {
	Grow             *float64
	Shrink           *float64
	Align            Alignment
	SizingHorizontal ItemSizing
	Positioning      Positioning
}

// Number is a typography value. Host may report it as a plain number, as an
// object with value and unit, or as "mixed" when text ranges disagree.
type Number struct {
	Value  float64
	Unit   Unit
	Set    bool // numeric value is available
	Mixed  bool
	Object bool // value came in {value, unit} form
}

// Concrete reports whether number carries a single usable value.
func (n Number) Concrete() bool {
	return n.Set && !n.Mixed
}

// String is a typography value which could be mixed.
type String struct {
	Value string
	Set   bool
	Mixed bool
}

// Concrete reports whether string carries a single usable value.
func (s String) Concrete() bool {
	return s.Set && !s.Mixed
}

// Text is a text node facet.
type Text struct {
	Characters      string
	FontSize        Number
	FontWeight      Number
	FontFamily      String
	LetterSpacing   Number
	LineHeight      Number
	AlignHorizontal string
	Decoration      String
}

// Color channels in 0-1 range.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// Paint is a single fill.
type Paint struct {
	Type    PaintType
	Visible *bool
	Color   Color
	Opacity *float64
}

// IsVisible reports paint visibility, host omits the flag for visible paints.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// Alpha returns paint opacity, 1 when absent.
func (p Paint) Alpha() float64 {
	if p.Opacity == nil {
		return 1
	}
	return *p.Opacity
}

// Node is a single scene graph node.
type Node struct {
	ID     string
	Name   string
	Kind   Kind
	X      float64
	Y      float64
	Width  float64
	Height float64

	MinWidth  *float64
	MaxWidth  *float64
	MinHeight *float64
	MaxHeight *float64

	Layout *Layout
	Item   Item
	Text   *Text
	Fills  []Paint

	parent   *Node
	children []*Node
}

// Append links children to the node in order and returns the node.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Parent returns parent node or nil for roots.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns node children in document order.
func (n *Node) Children() []*Node {
	return slices.Clip(n.children)
}

// HasLayout reports whether node is auto-layout container.
func (n *Node) HasLayout() bool {
	return n != nil && n.Layout != nil
}

// IsText reports whether node is text.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == KindText
}

// IsContainer reports whether node is a frame.
func (n *Node) IsContainer() bool {
	return n != nil && n.Kind == KindFrame
}

// IsImage reports whether node is a rectangle filled with an image.
func (n *Node) IsImage() bool {
	return n != nil && n.Kind == KindRectangle && len(n.Fills) > 0 && n.Fills[0].Type == PaintImage
}

// IsAbsolute reports whether node is taken out of its parent auto-layout flow.
func (n *Node) IsAbsolute() bool {
	return n != nil && n.Item.Positioning == PositioningAbsolute
}

// Walk visits node and all its descendants in pre-order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Round is the only rounding used for pixel values.
func Round(v float64) int {
	return int(math.Round(v))
}
