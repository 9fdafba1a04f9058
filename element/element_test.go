package element

import (
	"slices"
	"strings"
	"testing"

	"figmark/scene"
)

func attrPairs(d *Descriptor) []string {
	var res []string
	for k, v := range d.Attrs.All() {
		res = append(res, k+"="+v)
	}
	return res
}

func TestBuildKeepsStructure(t *testing.T) {
	root := (&scene.Node{ID: "1", Name: "section.hero#top", Kind: scene.KindFrame, Width: 400, Height: 300}).Append(
		&scene.Node{ID: "2", Name: "h1.title", Kind: scene.KindText, Text: &scene.Text{Characters: "Hello"}},
		(&scene.Node{ID: "3", Name: "ul.list", Kind: scene.KindFrame}).Append(
			&scene.Node{ID: "4", Name: "li", Kind: scene.KindText, Text: &scene.Text{Characters: "one"}},
			&scene.Node{ID: "5", Name: "li", Kind: scene.KindText, Text: &scene.Text{Characters: "two"}},
		),
	)

	d := NewBuilder("").Build(root)

	var order []string
	d.Walk(func(e, parent *Descriptor) {
		order = append(order, e.Source.ID)
		if e.Source.Parent() != nil && (parent == nil || parent.Source != e.Source.Parent()) {
			t.Errorf("element %s has wrong parent", e.Source.ID)
		}
	})
	if !slices.Equal(order, []string{"1", "2", "3", "4", "5"}) {
		t.Errorf("document order = %v", order)
	}

	if d.Tag != "section" || !slices.Equal(d.Classes, []string{"hero"}) {
		t.Errorf("root = %s %v", d.Tag, d.Classes)
	}
	if got := attrPairs(d); !slices.Equal(got, []string{"id=top"}) {
		t.Errorf("root attrs = %v", got)
	}
	if d.HasText {
		t.Error("frame must not carry text")
	}
	if title := d.Children[0]; !title.HasText || title.Text != "Hello" {
		t.Errorf("text element = %+v", title)
	}
}

func TestBuildImageIsTerminal(t *testing.T) {
	img := (&scene.Node{ID: "1", Name: `img.thumb[src="a.png"][data-x="1"]`, Kind: scene.KindFrame, Width: 9.6, Height: 20.4}).Append(
		&scene.Node{ID: "2", Name: "span", Kind: scene.KindText},
	)

	d := NewBuilder("").Build(img)

	if len(d.Children) != 0 {
		t.Errorf("img must have no children, got %d", len(d.Children))
	}
	if got := attrPairs(d); !slices.Equal(got, []string{"src=a.png", "width=10", "height=20"}) {
		t.Errorf("img attrs = %v", got)
	}
	if d.Source != img {
		t.Error("img must keep source node")
	}
}

func TestBuildImagePlaceholderAndAlt(t *testing.T) {
	n := &scene.Node{Name: `img[alt="Logo"]`, Kind: scene.KindRectangle, Width: 32, Height: 32}

	if got := attrPairs(NewBuilder("").Build(n)); !slices.Equal(got, []string{"src=" + DefaultImagePlaceholder, "width=32", "height=32", "alt=Logo"}) {
		t.Errorf("default placeholder attrs = %v", got)
	}
	if got := attrPairs(NewBuilder("assets/none.svg").Build(n)); got[0] != "src=assets/none.svg" {
		t.Errorf("configured placeholder attrs = %v", got)
	}
}

func TestBuildNormalizesText(t *testing.T) {
	n := &scene.Node{Name: "p", Kind: scene.KindText, Text: &scene.Text{Characters: "Cafe\u0301"}}
	if got := NewBuilder("").Build(n).Text; got != "Caf\u00e9" {
		t.Errorf("Text = %q", got)
	}
}

func TestSelector(t *testing.T) {
	tests := []struct {
		tag     string
		classes []string
		want    string
	}{
		{tag: "div", want: "div"},
		{tag: "div", classes: []string{"card", "wide"}, want: ".card.wide"},
		{tag: "a", classes: []string{"js-open", "link"}, want: ".link"},
		{tag: "a", classes: []string{"js-open"}, want: ""},
		{tag: "picture", want: ""},
		{tag: "picture", classes: []string{"hero"}, want: ".hero"},
	}

	for _, tt := range tests {
		if got := Selector(tt.tag, tt.classes); got != tt.want {
			t.Errorf("Selector(%q, %v) = %q, want %q", tt.tag, tt.classes, got, tt.want)
		}
	}

	a := &Descriptor{Tag: "div", Classes: []string{"card"}}
	b := &Descriptor{Tag: "section", Classes: []string{"card"}}
	if a.Selector() != b.Selector() {
		t.Error("same classes must produce the same selector")
	}
}

func TestDump(t *testing.T) {
	root := (&scene.Node{ID: "1", Name: "div.card", Kind: scene.KindFrame}).Append(
		&scene.Node{ID: "2", Name: "p", Kind: scene.KindText, Text: &scene.Text{Characters: "Hi"}},
	)
	out := Dump(NewBuilder("").Build(root))

	for _, want := range []string{
		"<div> selector[.card] classes[card] source[FRAME 1]\n",
		"  <p> selector[p] classes[] source[TEXT 2]\n",
		"    text: \"Hi\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}
}
