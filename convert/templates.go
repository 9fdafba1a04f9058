package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"figmark/common"
	"figmark/config"
	"figmark/scene"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Name       string
	ID         string
	Kind       string
	Index      int
	SourceFile string
	Format     string
}

// newValues describes generated document. When specific nodes were requested
// first of them names the output, otherwise first root does.
func newValues(doc *scene.Document, ids []string, src string, index int, format common.MarkupFormat) Values {
	v := Values{
		Name:       doc.Name,
		Index:      index,
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Format:     format.String(),
	}
	if len(ids) > 0 {
		v.ID = ids[0]
		if n, err := doc.Find(ids[0]); err == nil {
			v.Name, v.Kind = n.Name, string(n.Kind)
		}
	} else if len(doc.Roots) > 0 {
		v.ID, v.Kind = doc.Roots[0].ID, string(doc.Roots[0].Kind)
	}
	return v
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return buf.String(), nil
}
