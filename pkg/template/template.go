// Package template renders Elasticsearch request bodies (search queries and
// index templates) from Go values. Template files are embedded in the
// binary and addressed by their path relative to the templates directory,
// without the ".json.tmpl" extension, e.g. "index-template-es-7x" or
// "healthcheck/avg-date-histogram".
package template

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"path"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors" // Wrap errors with stacktrace.
)

const extension = ".json.tmpl"

//go:embed templates
var embedded embed.FS

// Renderer renders a named template with the given data into a request body.
type Renderer interface {
	Render(name string, data interface{}) (string, error)
}

// Templates is a Renderer backed by text/template.
type Templates struct {
	root *template.Template
}

var _ Renderer = (*Templates)(nil)

// Funcs available to every template.
var funcs = template.FuncMap{
	"json":  toJSON,
	"lower": strings.ToLower,
	"last":  last,
}

// New returns Templates parsed from the embedded templates directory.
func New() (*Templates, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub)
}

// NewFromFS returns Templates parsed from every *.json.tmpl file in fsys.
func NewFromFS(fsys fs.FS) (*Templates, error) {
	root := template.New("").Funcs(funcs).Option("missingkey=error")
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, extension) {
			return nil
		}
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Clean(p), extension)
		if _, err := root.New(name).Parse(string(b)); err != nil {
			return errors.Wrapf(err, "parsing template %s", name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Templates{root: root}, nil
}

// Render executes the named template.
func (t *Templates) Render(name string, data interface{}) (string, error) {
	tmpl := t.root.Lookup(name)
	if tmpl == nil {
		return "", errors.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "rendering template %s", name)
	}
	return buf.String(), nil
}

// Names returns the names of all parsed templates.
func (t *Templates) Names() []string {
	var names []string
	for _, tmpl := range t.root.Templates() {
		if tmpl.Name() != "" {
			names = append(names, tmpl.Name())
		}
	}
	return names
}

// IndexTemplateName returns the name of the index template
// for an Elasticsearch major version.
func IndexTemplateName(majorVersion int) string {
	return "index-template-es-" + strconv.Itoa(majorVersion) + "x"
}

// last reports whether i is the index of the final element of the slice s.
func last(i int, s interface{}) (bool, error) {
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return i == v.Len()-1, nil
	default:
		return false, errors.Errorf("last: unsupported type %T", s)
	}
}

func toJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
