// Package style maps scene nodes to CSS declarations.
//
// Mapping is evaluated in fixed order: box sizing, auto-layout container,
// typography, color and absolute positioning. Declarations are returned as
// "property: value" strings without terminating semicolon, duplicates are
// left to the caller.
package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"figmark/scene"
)

const (
	DeclPositionAbsolute = "position: absolute"
	DeclPositionRelative = "position: relative"
)

var (
	justifyContent = map[scene.Alignment]string{
		scene.AlignMin:          "flex-start",
		scene.AlignCenter:       "center",
		scene.AlignMax:          "flex-end",
		scene.AlignSpaceBetween: "space-between",
	}
	alignItems = map[scene.Alignment]string{
		scene.AlignMin:      "flex-start",
		scene.AlignCenter:   "center",
		scene.AlignMax:      "flex-end",
		scene.AlignBaseline: "baseline",
	}
	// STRETCH is not mapped, align-self: stretch breaks centering done by
	// parent.
	alignSelf = map[scene.Alignment]string{
		scene.AlignMin:     "flex-start",
		scene.AlignCenter:  "center",
		scene.AlignMax:     "flex-end",
		scene.AlignInherit: "inherit",
	}
	flexWrap = map[scene.Wrap]string{
		scene.WrapWrap: "wrap",
		scene.WrapNone: "nowrap",
	}
)

// Mapper computes declarations for scene nodes. It keeps no state between
// calls.
type Mapper struct {
	log *zap.Logger
}

// NewMapper returns mapper, nil logger is allowed.
func NewMapper(log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mapper{log: log.Named("style")}
}

// Map returns ordered declarations describing node.
func (m *Mapper) Map(n *scene.Node) []string {
	if n == nil {
		return nil
	}

	var decls []string
	decls = append(decls, boxSizing(n)...)
	if n.HasLayout() {
		decls = append(decls, flexContainer(n)...)
	}
	if n.IsText() && !n.HasLayout() && n.Text != nil {
		decls = append(decls, m.typography(n)...)
	}
	decls = append(decls, color(n)...)
	if n.IsAbsolute() {
		decls = append(decls,
			DeclPositionAbsolute,
			"left: "+px(n.X),
			"top: "+px(n.Y),
		)
	}
	return decls
}

func boxSizing(n *scene.Node) []string {
	var width, height string

	switch {
	case n.HasLayout():
		width, height = layoutSize(n)
	case n.IsText():
		width, height = "auto", "fit-content"
	default:
		if p := n.Parent(); p.IsContainer() && p.Width > 0 {
			width = percent(n.Width / p.Width * 100)
		} else {
			width = px(n.Width)
		}
		if n.IsImage() {
			height = "auto"
		} else {
			height = px(n.Height)
		}
	}

	decls := []string{"width: " + width, "height: " + height}
	for _, c := range []struct {
		prop  string
		value *float64
	}{
		{"min-width", n.MinWidth},
		{"max-width", n.MaxWidth},
		{"min-height", n.MinHeight},
		{"max-height", n.MaxHeight},
	} {
		if c.value != nil && *c.value > 0 && !math.IsInf(*c.value, 0) {
			decls = append(decls, c.prop+": "+px(*c.value))
		}
	}
	return decls
}

// layoutSize picks auto-layout container extent. Width hugs content when the
// axis running horizontally is AUTO sized, height when the vertical one is.
func layoutSize(n *scene.Node) (width, height string) {
	l := n.Layout

	horizontalAuto, verticalAuto := l.PrimarySizing == scene.SizingAuto, l.CounterSizing == scene.SizingAuto
	if l.Mode == scene.DirectionVertical {
		horizontalAuto, verticalAuto = verticalAuto, horizontalAuto
	}

	switch {
	case horizontalAuto:
		width = "fit-content"
	case n.Item.SizingHorizontal == scene.ItemSizingFill || n.Item.Align == scene.AlignStretch:
		width = "100%"
	default:
		width = px(n.Width)
	}

	if verticalAuto {
		height = "fit-content"
	} else {
		height = px(n.Height)
	}
	return width, height
}

func flexContainer(n *scene.Node) []string {
	l := n.Layout

	decls := []string{"display: flex"}
	if l.Mode == scene.DirectionHorizontal {
		decls = append(decls, "flex-direction: row")
	} else {
		decls = append(decls, "flex-direction: column")
	}
	if v, ok := flexWrap[l.Wrap]; ok {
		decls = append(decls, "flex-wrap: "+v)
	}
	if v, ok := justifyContent[l.PrimaryAlign]; ok {
		decls = append(decls, "justify-content: "+v)
	}
	if v, ok := alignItems[l.CounterAlign]; ok {
		decls = append(decls, "align-items: "+v)
	}
	if g := n.Item.Grow; g != nil && *g != 0 {
		decls = append(decls, "flex-grow: "+number(*g))
	}
	if s := n.Item.Shrink; s != nil {
		decls = append(decls, "flex-shrink: "+number(*s))
	}
	if v, ok := alignSelf[n.Item.Align]; ok {
		decls = append(decls, "align-self: "+v)
	}
	if l.ItemSpacing > 0 {
		decls = append(decls, "gap: "+px(l.ItemSpacing))
	}
	if l.PaddingTop > 0 || l.PaddingRight > 0 || l.PaddingBottom > 0 || l.PaddingLeft > 0 {
		decls = append(decls, fmt.Sprintf("padding: %s %s %s %s",
			px(l.PaddingTop), px(l.PaddingRight), px(l.PaddingBottom), px(l.PaddingLeft)))
	}
	return decls
}

func (m *Mapper) typography(n *scene.Node) []string {
	t := n.Text

	var decls []string
	if t.FontSize.Concrete() {
		decls = append(decls, "font-size: "+px(t.FontSize.Value))
	}
	if t.FontWeight.Concrete() {
		decls = append(decls, "font-weight: "+number(t.FontWeight.Value))
	}
	if t.FontFamily.Concrete() {
		decls = append(decls, `font-family: "`+cssEscapeDoubleQuoted(t.FontFamily.Value)+`"`)
	}
	if t.LetterSpacing.Concrete() && t.LetterSpacing.Value != 0 {
		decls = append(decls, "letter-spacing: "+px(t.LetterSpacing.Value))
	}
	if lh := t.LineHeight; lh.Concrete() && lh.Object {
		if lh.Unit == scene.UnitPercent {
			m.log.Debug("Line height in percent treated as pixels",
				zap.String("node", n.ID), zap.String("name", n.Name), zap.Float64("value", lh.Value))
		}
		decls = append(decls, "line-height: "+px(lh.Value))
	}
	if t.AlignHorizontal != "" {
		decls = append(decls, "text-align: "+strings.ToLower(t.AlignHorizontal))
	}
	if t.Decoration.Concrete() {
		decls = append(decls, "text-decoration: "+strings.ToLower(t.Decoration.Value))
	}
	return decls
}

func color(n *scene.Node) []string {
	if len(n.Fills) == 0 {
		return nil
	}
	fill := n.Fills[0]
	if fill.Type != scene.PaintSolid || !fill.IsVisible() {
		return nil
	}

	value := fmt.Sprintf("rgba(%d, %d, %d, %s)",
		channel(fill.Color.R), channel(fill.Color.G), channel(fill.Color.B), number(fill.Alpha()))
	if n.IsText() {
		return []string{"color: " + value}
	}
	return []string{"background-color: " + value}
}

func channel(v float64) int {
	return scene.Round(v * 255)
}

func px(v float64) string {
	return strconv.Itoa(scene.Round(v)) + "px"
}

func percent(v float64) string {
	return number(math.Round(v*100)/100) + "%"
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped as \" and \\, control characters
// and line separators become hex escapes.
func cssEscapeDoubleQuoted(s string) string {
	if !strings.ContainsFunc(s, needsEscape) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == 0:
			b.WriteString(`\fffd `)
		case needsEscape(r):
			fmt.Fprintf(&b, `\%x `, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(r rune) bool {
	return r == '\\' || r == '"' || unicode.IsControl(r) || r == '\u2028' || r == '\u2029'
}
