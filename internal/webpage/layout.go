package webpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// Layout executes the shared "base" template. In dev mode templates are
// reparsed on each render.
type Layout struct {
	dir   string
	dev   bool
	cache *template.Template
}

// NewLayout parses the templates under dir. Parsing happens eagerly even in
// dev mode so a broken template directory fails at startup.
func NewLayout(dir string, dev bool) (*Layout, error) {
	t, err := parseTemplates(dir)
	if err != nil {
		return nil, err
	}
	return &Layout{dir: dir, dev: dev, cache: t}, nil
}

func parseTemplates(dir string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
	}
	// ParseGlob doesn't support **, so walk.
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// Render executes the base layout with data and writes it with the given status.
// Nothing is written when execution fails.
func (l *Layout) Render(w http.ResponseWriter, status int, data any) error {
	t := l.cache
	if l.dev {
		tc, err := parseTemplates(l.dir)
		if err != nil {
			return fmt.Errorf("template parse: %w", err)
		}
		t = tc
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("template exec: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
