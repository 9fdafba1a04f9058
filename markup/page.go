package markup

import (
	"strings"

	"github.com/beevik/etree"

	"figmark/element"
)

// Page returns complete XHTML document with element trees placed into body
// and stylesheet linked from head. Unlike Emit text is escaped and empty
// elements are self-closing, so result is always well formed.
func Page(title, stylesheet string, roots ...*element.Descriptor) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")

	head := html.CreateElement("head")

	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")

	if stylesheet != "" {
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("type", "text/css")
		link.CreateAttr("href", stylesheet)
	}

	titleElem := head.CreateElement("title")
	titleElem.SetText(title)

	body := html.CreateElement("body")
	for _, r := range roots {
		appendElement(body, r)
	}
	return doc
}

func appendElement(parent *etree.Element, d *element.Descriptor) {
	el := parent.CreateElement(d.Tag)
	if len(d.Classes) > 0 {
		el.CreateAttr("class", strings.Join(d.Classes, " "))
	}
	for k, v := range d.Attrs.All() {
		el.CreateAttr(k, v)
	}

	switch {
	case d.Void():
		return
	case d.HasText:
		el.SetText(d.Text)
		return
	}
	for _, c := range d.Children {
		appendElement(el, c)
	}
}
