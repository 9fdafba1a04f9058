package element

import (
	"strings"

	"figmark/utils/debug"
)

// Dump returns readable element tree. It exists solely for debug reports.
func Dump(roots ...*Descriptor) string {
	tw := debug.NewTreeWriter()
	for _, r := range roots {
		dump(tw, r, 0)
	}
	return tw.String()
}

func dump(tw *debug.TreeWriter, d *Descriptor, depth int) {
	src := "<nil>"
	if d.Source != nil {
		src = string(d.Source.Kind) + " " + d.Source.ID
	}
	tw.Line(depth, "<%s> selector[%s] classes[%s] source[%s]", d.Tag, d.Selector(), strings.Join(d.Classes, " "), src)
	tw.Pairs(depth+1, "attrs", d.Attrs.All())
	if d.HasText {
		tw.TextBlock(depth+1, "text", d.Text)
	}
	for _, c := range d.Children {
		dump(tw, c, depth+1)
	}
}
