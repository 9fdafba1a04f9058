package style

import (
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"figmark/scene"
)

func f(v float64) *float64 { return &v }

func b(v bool) *bool { return &v }

func solid(r, g, bl float64, opacity *float64) scene.Paint {
	return scene.Paint{Type: scene.PaintSolid, Color: scene.Color{R: r, G: g, B: bl}, Opacity: opacity}
}

func TestMapAutoLayoutSizing(t *testing.T) {
	tests := []struct {
		name   string
		node   *scene.Node
		width  string
		height string
	}{
		{
			name: "horizontal hug both",
			node: &scene.Node{Width: 120, Height: 40, Layout: &scene.Layout{
				Mode: scene.DirectionHorizontal, PrimarySizing: scene.SizingAuto, CounterSizing: scene.SizingAuto}},
			width: "width: fit-content", height: "height: fit-content",
		},
		{
			name: "horizontal fixed",
			node: &scene.Node{Width: 120.4, Height: 39.6, Layout: &scene.Layout{
				Mode: scene.DirectionHorizontal, PrimarySizing: scene.SizingFixed, CounterSizing: scene.SizingFixed}},
			width: "width: 120px", height: "height: 40px",
		},
		{
			name: "horizontal fill",
			node: &scene.Node{Width: 120, Height: 40, Item: scene.Item{SizingHorizontal: scene.ItemSizingFill}, Layout: &scene.Layout{
				Mode: scene.DirectionHorizontal, PrimarySizing: scene.SizingFixed, CounterSizing: scene.SizingAuto}},
			width: "width: 100%", height: "height: fit-content",
		},
		{
			name: "vertical uses counter axis for width",
			node: &scene.Node{Width: 120, Height: 40, Layout: &scene.Layout{
				Mode: scene.DirectionVertical, PrimarySizing: scene.SizingFixed, CounterSizing: scene.SizingAuto}},
			width: "width: fit-content", height: "height: 40px",
		},
		{
			name: "vertical uses primary axis for height",
			node: &scene.Node{Width: 120, Height: 40, Layout: &scene.Layout{
				Mode: scene.DirectionVertical, PrimarySizing: scene.SizingAuto, CounterSizing: scene.SizingFixed}},
			width: "width: 120px", height: "height: fit-content",
		},
		{
			name: "vertical stretched",
			node: &scene.Node{Width: 120, Height: 40, Item: scene.Item{Align: scene.AlignStretch}, Layout: &scene.Layout{
				Mode: scene.DirectionVertical, PrimarySizing: scene.SizingFixed, CounterSizing: scene.SizingFixed}},
			width: "width: 100%", height: "height: 40px",
		},
	}

	m := NewMapper(zaptest.NewLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(tt.node)
			if len(got) < 2 || got[0] != tt.width || got[1] != tt.height {
				t.Errorf("Map() = %v, want %q, %q first", got, tt.width, tt.height)
			}
		})
	}
}

func TestMapLeafSizing(t *testing.T) {
	m := NewMapper(nil)

	frame := &scene.Node{Kind: scene.KindFrame, Width: 300, Height: 200}
	rect := &scene.Node{Kind: scene.KindRectangle, Width: 100, Height: 50.5}
	photo := &scene.Node{Kind: scene.KindRectangle, Width: 150, Height: 80, Fills: []scene.Paint{{Type: scene.PaintImage}}}
	frame.Append(rect, photo)

	if got := m.Map(rect); !slices.Equal(got[:2], []string{"width: 33.33%", "height: 51px"}) {
		t.Errorf("rectangle in frame = %v", got)
	}
	if got := m.Map(photo); !slices.Equal(got[:2], []string{"width: 50%", "height: auto"}) {
		t.Errorf("image in frame = %v", got)
	}

	group := &scene.Node{Kind: scene.KindGroup, Width: 300, Height: 200}
	ellipse := &scene.Node{Kind: scene.KindEllipse, Width: 24.5, Height: 24.4}
	group.Append(ellipse)
	if got := m.Map(ellipse); !slices.Equal(got, []string{"width: 25px", "height: 24px"}) {
		t.Errorf("ellipse in group = %v", got)
	}

	orphan := &scene.Node{Kind: scene.KindRectangle, Width: 10, Height: 10}
	if got := m.Map(orphan); !slices.Equal(got, []string{"width: 10px", "height: 10px"}) {
		t.Errorf("root rectangle = %v", got)
	}
}

func TestMapSizeConstraints(t *testing.T) {
	n := &scene.Node{Kind: scene.KindRectangle, Width: 10, Height: 10,
		MinWidth: f(0), MaxWidth: f(320.6), MinHeight: f(-5), MaxHeight: f(48)}

	got := NewMapper(nil).Map(n)
	want := []string{"width: 10px", "height: 10px", "max-width: 321px", "max-height: 48px"}
	if !slices.Equal(got, want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}
}

func TestMapFlexContainer(t *testing.T) {
	n := &scene.Node{Kind: scene.KindFrame, Width: 200, Height: 100,
		Item: scene.Item{Grow: f(1), Shrink: f(0), Align: scene.AlignCenter},
		Layout: &scene.Layout{
			Mode:          scene.DirectionHorizontal,
			PrimarySizing: scene.SizingFixed,
			CounterSizing: scene.SizingFixed,
			PrimaryAlign:  scene.AlignSpaceBetween,
			CounterAlign:  scene.AlignBaseline,
			ItemSpacing:   8.4,
			PaddingTop:    4,
			PaddingRight:  12.5,
			PaddingLeft:   12,
			Wrap:          scene.WrapWrap,
		},
	}

	got := NewMapper(nil).Map(n)
	want := []string{
		"width: 200px", "height: 100px",
		"display: flex",
		"flex-direction: row",
		"flex-wrap: wrap",
		"justify-content: space-between",
		"align-items: baseline",
		"flex-grow: 1",
		"flex-shrink: 0",
		"align-self: center",
		"gap: 8px",
		"padding: 4px 13px 0px 12px",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Map() =\n%v\nwant\n%v", got, want)
	}
}

func TestMapFlexContainerOmissions(t *testing.T) {
	n := &scene.Node{Kind: scene.KindFrame, Width: 200, Height: 100,
		Item: scene.Item{Grow: f(0), Align: scene.AlignStretch},
		Layout: &scene.Layout{
			Mode:          scene.DirectionVertical,
			PrimarySizing: scene.SizingAuto,
			CounterSizing: scene.SizingAuto,
			PrimaryAlign:  scene.AlignMin,
			CounterAlign:  scene.AlignMax,
		},
	}

	got := NewMapper(nil).Map(n)
	want := []string{
		"width: fit-content", "height: fit-content",
		"display: flex",
		"flex-direction: column",
		"justify-content: flex-start",
		"align-items: flex-end",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Map() =\n%v\nwant\n%v", got, want)
	}
}

func TestMapTypography(t *testing.T) {
	n := &scene.Node{Kind: scene.KindText, Width: 80, Height: 20,
		Text: &scene.Text{
			Characters:      "Sale",
			FontSize:        scene.Number{Value: 14, Set: true},
			FontWeight:      scene.Number{Value: 600, Set: true},
			FontFamily:      scene.String{Value: "Inter", Set: true},
			LetterSpacing:   scene.Number{Value: 0.6, Unit: scene.UnitPixels, Set: true, Object: true},
			LineHeight:      scene.Number{Value: 20.2, Unit: scene.UnitPixels, Set: true, Object: true},
			AlignHorizontal: "CENTER",
			Decoration:      scene.String{Value: "UNDERLINE", Set: true},
		},
		Fills: []scene.Paint{solid(1, 0, 0, f(0.5))},
	}

	got := NewMapper(nil).Map(n)
	want := []string{
		"width: auto", "height: fit-content",
		"font-size: 14px",
		"font-weight: 600",
		`font-family: "Inter"`,
		"letter-spacing: 1px",
		"line-height: 20px",
		"text-align: center",
		"text-decoration: underline",
		"color: rgba(255, 0, 0, 0.5)",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Map() =\n%v\nwant\n%v", got, want)
	}
}

func TestMapTypographySkipsMixedAndAbsent(t *testing.T) {
	n := &scene.Node{Kind: scene.KindText,
		Text: &scene.Text{
			FontSize:      scene.Number{Mixed: true},
			FontWeight:    scene.Number{Mixed: true},
			FontFamily:    scene.String{Mixed: true},
			LetterSpacing: scene.Number{Value: 0, Set: true},
			LineHeight:    scene.Number{Value: 18, Set: true},
			Decoration:    scene.String{Mixed: true},
		},
	}

	got := NewMapper(nil).Map(n)
	if want := []string{"width: auto", "height: fit-content"}; !slices.Equal(got, want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}
}

func TestMapLineHeightPercentLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := &scene.Node{ID: "7:1", Kind: scene.KindText,
		Text: &scene.Text{LineHeight: scene.Number{Value: 150, Unit: scene.UnitPercent, Set: true, Object: true}},
	}

	got := NewMapper(zap.New(core)).Map(n)
	if !slices.Contains(got, "line-height: 150px") {
		t.Errorf("Map() = %v, percent line height must still be emitted in pixels", got)
	}
	if logs.FilterMessage("Line height in percent treated as pixels").Len() != 1 {
		t.Errorf("expected single debug entry, got %v", logs.All())
	}
}

func TestMapColor(t *testing.T) {
	tests := []struct {
		name string
		node *scene.Node
		want string
	}{
		{
			name: "background for shapes, opacity defaults to 1",
			node: &scene.Node{Kind: scene.KindRectangle, Fills: []scene.Paint{solid(0.2, 0.4, 0.6, nil)}},
			want: "background-color: rgba(51, 102, 153, 1)",
		},
		{
			name: "rounded channels",
			node: &scene.Node{Kind: scene.KindFrame, Fills: []scene.Paint{solid(0.5, 0.999, 0.001, f(0.25))}},
			want: "background-color: rgba(128, 255, 0, 0.25)",
		},
		{
			name: "invisible first fill",
			node: &scene.Node{Kind: scene.KindRectangle, Fills: []scene.Paint{
				{Type: scene.PaintSolid, Visible: b(false)}, solid(1, 1, 1, nil)}},
		},
		{
			name: "gradient first fill",
			node: &scene.Node{Kind: scene.KindRectangle, Fills: []scene.Paint{
				{Type: scene.PaintGradientLinear}, solid(1, 1, 1, nil)}},
		},
		{
			name: "no fills",
			node: &scene.Node{Kind: scene.KindRectangle},
		},
	}

	m := NewMapper(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var colors []string
			for _, d := range m.Map(tt.node) {
				if strings.HasPrefix(d, "background-color:") || strings.HasPrefix(d, "color:") {
					colors = append(colors, d)
				}
			}
			switch {
			case tt.want == "" && len(colors) != 0:
				t.Errorf("unexpected color declarations %v", colors)
			case tt.want != "" && !slices.Equal(colors, []string{tt.want}):
				t.Errorf("color declarations = %v, want %q", colors, tt.want)
			}
		})
	}
}

func TestMapAbsolutePosition(t *testing.T) {
	n := &scene.Node{Kind: scene.KindRectangle, X: 10.5, Y: -3.2, Width: 4, Height: 4,
		Item: scene.Item{Positioning: scene.PositioningAbsolute}}

	got := NewMapper(nil).Map(n)
	want := []string{"width: 4px", "height: 4px", DeclPositionAbsolute, "left: 11px", "top: -3px"}
	if !slices.Equal(got, want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}

	n.Item.Positioning = scene.PositioningAuto
	if slices.Contains(NewMapper(nil).Map(n), DeclPositionAbsolute) {
		t.Error("auto positioned node must not be absolute")
	}
}

func TestMapNil(t *testing.T) {
	if got := NewMapper(nil).Map(nil); got != nil {
		t.Errorf("Map(nil) = %v", got)
	}
}

func TestCSSEscapeDoubleQuoted(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Inter", "Inter"},
		{`Say "Hi"`, `Say \"Hi\"`},
		{`back\slash`, `back\\slash`},
		{"tab\tfont", `tab\9 font`},
		{"new\nline", `new\a line`},
		{"nul\x00", `nul\fffd `},
		{"sep\u2028", `sep\2028 `},
		{"Шрифт", "Шрифт"},
	}
	for _, tt := range tests {
		if got := cssEscapeDoubleQuoted(tt.in); got != tt.want {
			t.Errorf("cssEscapeDoubleQuoted(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapFontFamilyEscaped(t *testing.T) {
	n := &scene.Node{Kind: scene.KindText, Text: &scene.Text{
		FontFamily: scene.String{Value: "My \"Font\"\t", Set: true},
	}}
	got := NewMapper(nil).Map(n)
	if !slices.Contains(got, `font-family: "My \"Font\"\9 "`) {
		t.Errorf("Map() = %v", got)
	}
}
