package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/format"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/i18n"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/seo"
)

const layoutName = "base"

// Renderer executes page templates inside the shared layout.
//
// Layout and partial templates live in <dir>/layout; every file in
// <dir>/pages defines the "content" block for one page and is addressed by its
// base name ("home", "contacts", ...).
type Renderer struct {
	dir    string
	dev    bool
	bundle *i18n.Bundle

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// New parses the templates under dir. In dev mode templates are reparsed on
// every render so edits show up without a restart.
func New(dir string, bundle *i18n.Bundle, dev bool) (*Renderer, error) {
	r := &Renderer{dir: dir, dev: dev, bundle: bundle}
	pages, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.pages = pages
	return r, nil
}

// Funcs returns the helpers available to templates.
func (r *Renderer) Funcs() template.FuncMap {
	return template.FuncMap{
		"t": func(lang, key string) string { return r.bundle.T(lang, key) },
		"tf": func(lang, key string, kv ...string) string {
			args := make(map[string]string, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				args[kv[i]] = kv[i+1]
			}
			return r.bundle.Format(lang, key, args)
		},
		"fmtDate":   format.FmtDate,
		"isoDate":   format.ISODate,
		"localized": seo.LocalizedPath,
		"hreflang":  i18n.HrefLang,
		"safeJSON":  func(s string) template.JS { return template.JS(s) },
		"year":      func() int { return time.Now().Year() },
	}
}

func (r *Renderer) parse() (map[string]*template.Template, error) {
	layoutFiles, err := collect(filepath.Join(r.dir, "layout"))
	if err != nil {
		return nil, err
	}
	if len(layoutFiles) == 0 {
		return nil, fmt.Errorf("no layout templates found under %s", filepath.Join(r.dir, "layout"))
	}
	base, err := template.New("_root").Funcs(r.Funcs()).ParseFiles(layoutFiles...)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := collect(filepath.Join(r.dir, "pages"))
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		name := strings.TrimSuffix(filepath.Base(file), ".tmpl")
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFiles(file); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = clone
	}
	return pages, nil
}

// Recursively discover .tmpl files. ParseGlob doesn't support **.
func collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk templates %s: %w", dir, err)
	}
	return files, nil
}

// HTML renders page with status. Output is buffered so a failing template
// never produces a half-written 200.
func (r *Renderer) HTML(w http.ResponseWriter, status int, page string, data any) error {
	pages := r.current()
	if r.dev {
		fresh, err := r.parse()
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.pages = fresh
		r.mu.Unlock()
		pages = fresh
	}
	t, ok := pages[page]
	if !ok {
		return fmt.Errorf("render: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) current() map[string]*template.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pages
}
