package convert

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"

	"figmark/element"
	"figmark/markup"
	"figmark/scene"
	"figmark/style"
	"figmark/stylesheet"
)

const (
	MarkupPlaceholder     = "<!-- error: unable to generate markup -->"
	StylesheetPlaceholder = "/* error: unable to generate stylesheet */"
)

// Options controls generation.
type Options struct {
	// ImagePlaceholder is src for img elements which do not name one.
	ImagePlaceholder string
	// Indent is number of spaces per nesting level.
	Indent int
}

// DefaultOptions returns options producing canonical output.
func DefaultOptions() Options {
	return Options{ImagePlaceholder: element.DefaultImagePlaceholder, Indent: len(markup.DefaultIndent)}
}

// Result is a pair of generated artifacts together with element trees they
// were produced from.
type Result struct {
	Markup     string
	Stylesheet string
	Elements   []*element.Descriptor
	// Err is set when artifacts are placeholders.
	Err error
}

// Failed reports whether result holds placeholders.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Select returns containers with requested IDs in requested order, or all
// document roots when no IDs are given.
func Select(doc *scene.Document, ids []string) ([]*scene.Node, error) {
	if len(ids) == 0 {
		if len(doc.Roots) == 0 {
			return nil, scene.ErrEmptyScene
		}
		return doc.Roots, nil
	}
	roots := make([]*scene.Node, 0, len(ids))
	for _, id := range ids {
		n, err := doc.Container(id)
		if err != nil {
			return nil, err
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// Generate produces markup and stylesheet for every root. Markup of separate
// roots is joined by new line, stylesheets by blank line. Each root gets its
// own stylesheet so rules never merge across roots.
func Generate(roots []*scene.Node, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		builder = element.NewBuilder(opts.ImagePlaceholder)
		writer  = markup.NewWriter(opts.Indent)
		sheets  = stylesheet.NewBuilder(style.NewMapper(log), log)
		res     = &Result{Elements: make([]*element.Descriptor, 0, len(roots))}
		texts   = make([]string, 0, len(roots))
		rules   = make([]string, 0, len(roots))
	)

	for i, r := range roots {
		if r == nil {
			return nil, fmt.Errorf("root %d is missing", i)
		}
		d := builder.Build(r)
		res.Elements = append(res.Elements, d)
		texts = append(texts, writer.Emit(d, ""))
		if css := sheets.Build(d).String(); len(css) > 0 {
			rules = append(rules, css)
		}
	}

	res.Markup = strings.Join(texts, "\n")
	res.Stylesheet = strings.Join(rules, "\n")
	return res, nil
}

// Safe is a generation boundary. Any failure, including panic, is logged and
// turned into placeholder artifacts, partial output is never returned.
func Safe(doc *scene.Document, ids []string, opts Options, log *zap.Logger) (res *Result) {
	if log == nil {
		log = zap.NewNop()
	}

	fail := func(err error) *Result {
		log.Error("Unable to generate", zap.Strings("nodes", ids), zap.Error(err))
		return &Result{Markup: MarkupPlaceholder, Stylesheet: StylesheetPlaceholder, Err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Debug("Generation panic", zap.ByteString("stack", debug.Stack()))
			res = fail(fmt.Errorf("generation panic: %v", r))
		}
	}()

	if doc == nil {
		return fail(errors.New("no scene document"))
	}
	roots, err := Select(doc, ids)
	if err != nil {
		return fail(err)
	}
	res, err = Generate(roots, opts, log)
	if err != nil {
		return fail(err)
	}
	return res
}
