package scene

import (
	"errors"
	"fmt"
	"io"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// mixedMarker is how exported documents spell host "mixed" symbol.
const mixedMarker = "mixed"

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrNotContainer = errors.New("node is not a container")
	ErrEmptyScene   = errors.New("scene has no nodes")
)

// Document is an exported selection: one or more sibling roots.
type Document struct {
	Name  string
	Roots []*Node
}

// Find returns node with requested ID searching all roots in pre-order.
func (d *Document) Find(id string) (*Node, error) {
	var found *Node
	for _, r := range d.Roots {
		r.Walk(func(n *Node) bool {
			if n.ID == id {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
}

// Container returns node with requested ID which must be a frame.
func (d *Document) Container(id string) (*Node, error) {
	n, err := d.Find(id)
	if err != nil {
		return nil, err
	}
	if !n.IsContainer() {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotContainer, id, n.Kind)
	}
	return n, nil
}

// Decode reads exported scene document. Since JSON is a subset of YAML
// documents produced by host plugins are accepted as is. Top level is either
// a mapping with "roots" sequence or a single node.
func Decode(r io.Reader) (*Document, error) {
	var top yaml.Node
	if err := yaml.NewDecoder(r).Decode(&top); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScene
		}
		return nil, fmt.Errorf("unable to decode scene: %w", err)
	}

	var doc struct {
		Name  string     `yaml:"name"`
		Roots []wireNode `yaml:"roots"`
	}
	if len(top.Content) > 0 && top.Content[0].Kind == yaml.SequenceNode {
		// bare list of sibling roots
		if err := top.Decode(&doc.Roots); err != nil {
			return nil, fmt.Errorf("unable to decode scene roots: %w", err)
		}
		if len(doc.Roots) == 0 {
			return nil, ErrEmptyScene
		}
	} else if err := top.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode scene: %w", err)
	}

	if len(doc.Roots) == 0 {
		var single wireNode
		if err := top.Decode(&single); err != nil {
			return nil, fmt.Errorf("unable to decode scene node: %w", err)
		}
		if single.Type == "" && len(single.Children) == 0 {
			return nil, ErrEmptyScene
		}
		doc.Roots = []wireNode{single}
	}
	if doc.Name == "" {
		doc.Name = doc.Roots[0].Name
	}

	res := &Document{Name: doc.Name, Roots: make([]*Node, 0, len(doc.Roots))}
	for i := range doc.Roots {
		res.Roots = append(res.Roots, doc.Roots[i].node())
	}
	return res, nil
}

// wireNode mirrors host plugin property names.
type wireNode struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	MinWidth  *float64 `yaml:"minWidth"`
	MaxWidth  *float64 `yaml:"maxWidth"`
	MinHeight *float64 `yaml:"minHeight"`
	MaxHeight *float64 `yaml:"maxHeight"`

	LayoutMode            string  `yaml:"layoutMode"`
	PrimaryAxisSizingMode string  `yaml:"primaryAxisSizingMode"`
	CounterAxisSizingMode string  `yaml:"counterAxisSizingMode"`
	PrimaryAxisAlignItems string  `yaml:"primaryAxisAlignItems"`
	CounterAxisAlignItems string  `yaml:"counterAxisAlignItems"`
	ItemSpacing           float64 `yaml:"itemSpacing"`
	PaddingTop            float64 `yaml:"paddingTop"`
	PaddingRight          float64 `yaml:"paddingRight"`
	PaddingBottom         float64 `yaml:"paddingBottom"`
	PaddingLeft           float64 `yaml:"paddingLeft"`
	LayoutWrap            string  `yaml:"layoutWrap"`

	LayoutGrow             *float64 `yaml:"layoutGrow"`
	LayoutShrink           *float64 `yaml:"layoutShrink"`
	LayoutAlign            string   `yaml:"layoutAlign"`
	LayoutSizingHorizontal string   `yaml:"layoutSizingHorizontal"`
	LayoutPositioning      string   `yaml:"layoutPositioning"`

	Characters          string   `yaml:"characters"`
	FontSize            Number   `yaml:"fontSize"`
	FontWeight          Number   `yaml:"fontWeight"`
	FontName            fontName `yaml:"fontName"`
	LetterSpacing       Number   `yaml:"letterSpacing"`
	LineHeight          Number   `yaml:"lineHeight"`
	TextAlignHorizontal string   `yaml:"textAlignHorizontal"`
	TextDecoration      String   `yaml:"textDecoration"`

	Fills    paints     `yaml:"fills"`
	Children []wireNode `yaml:"children"`
}

func (w *wireNode) node() *Node {
	n := &Node{
		ID:        w.ID,
		Name:      w.Name,
		Kind:      Kind(strings.ToUpper(w.Type)),
		X:         w.X,
		Y:         w.Y,
		Width:     w.Width,
		Height:    w.Height,
		MinWidth:  w.MinWidth,
		MaxWidth:  w.MaxWidth,
		MinHeight: w.MinHeight,
		MaxHeight: w.MaxHeight,
		Item: Item{
			Grow:             w.LayoutGrow,
			Shrink:           w.LayoutShrink,
			Align:            Alignment(w.LayoutAlign),
			SizingHorizontal: ItemSizing(w.LayoutSizingHorizontal),
			Positioning:      Positioning(w.LayoutPositioning),
		},
		Fills: []Paint(w.Fills),
	}

	switch Direction(w.LayoutMode) {
	case DirectionHorizontal, DirectionVertical:
		n.Layout = &Layout{
			Mode:          Direction(w.LayoutMode),
			PrimarySizing: SizingMode(w.PrimaryAxisSizingMode),
			CounterSizing: SizingMode(w.CounterAxisSizingMode),
			PrimaryAlign:  Alignment(w.PrimaryAxisAlignItems),
			CounterAlign:  Alignment(w.CounterAxisAlignItems),
			ItemSpacing:   w.ItemSpacing,
			PaddingTop:    w.PaddingTop,
			PaddingRight:  w.PaddingRight,
			PaddingBottom: w.PaddingBottom,
			PaddingLeft:   w.PaddingLeft,
			Wrap:          Wrap(w.LayoutWrap),
		}
	}

	if n.Kind == KindText {
		n.Text = &Text{
			Characters:      w.Characters,
			FontSize:        w.FontSize,
			FontWeight:      w.FontWeight,
			FontFamily:      String(w.FontName),
			LetterSpacing:   w.LetterSpacing,
			LineHeight:      w.LineHeight,
			AlignHorizontal: w.TextAlignHorizontal,
			Decoration:      w.TextDecoration,
		}
	}

	for i := range w.Children {
		n.Append(w.Children[i].node())
	}
	return n
}

// UnmarshalYAML accepts number, "mixed" or {value, unit} object.
func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	*n = Number{}
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return nil
		}
		if strings.EqualFold(value.Value, mixedMarker) {
			n.Mixed = true
			return nil
		}
		if err := value.Decode(&n.Value); err != nil {
			return fmt.Errorf("line %d: numeric value expected: %w", value.Line, err)
		}
		n.Set = true
	case yaml.MappingNode:
		var obj struct {
			Value *float64 `yaml:"value"`
			Unit  string   `yaml:"unit"`
		}
		if err := value.Decode(&obj); err != nil {
			return err
		}
		n.Object = true
		n.Unit = Unit(strings.ToUpper(obj.Unit))
		if obj.Value != nil {
			n.Value, n.Set = *obj.Value, true
		}
	default:
		return fmt.Errorf("line %d: unexpected node for numeric value", value.Line)
	}
	return nil
}

// UnmarshalYAML accepts string or "mixed".
func (s *String) UnmarshalYAML(value *yaml.Node) error {
	*s = String{}
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: string value expected", value.Line)
	}
	if value.Tag == "!!null" {
		return nil
	}
	if value.Value == mixedMarker {
		s.Mixed = true
		return nil
	}
	s.Value, s.Set = value.Value, true
	return nil
}

// fontName accepts {family, style} object, bare family name or "mixed".
type fontName String

func (f *fontName) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		var obj struct {
			Family string `yaml:"family"`
		}
		if err := value.Decode(&obj); err != nil {
			return err
		}
		*f = fontName{Value: obj.Family, Set: obj.Family != ""}
		return nil
	}
	return (*String)(f).UnmarshalYAML(value)
}

type wirePaint struct {
	Type    string   `yaml:"type"`
	Visible *bool    `yaml:"visible"`
	Color   Color    `yaml:"color"`
	Opacity *float64 `yaml:"opacity"`
}

// paints treats "mixed" fills as no fills at all.
type paints []Paint

func (p *paints) UnmarshalYAML(value *yaml.Node) error {
	*p = nil
	if value.Kind != yaml.SequenceNode {
		return nil
	}
	var wire []wirePaint
	if err := value.Decode(&wire); err != nil {
		return err
	}
	for _, w := range wire {
		*p = append(*p, Paint{
			Type:    PaintType(strings.ToUpper(w.Type)),
			Visible: w.Visible,
			Color:   w.Color,
			Opacity: w.Opacity,
		})
	}
	return nil
}
