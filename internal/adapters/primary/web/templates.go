package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/lorrc/mentor-portal/internal/core/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	PageHome           = "home"
	PageSignup         = "signup"
	PageSignupComplete = "signup_complete"
	PageProfile        = "profile"
	PageProfileFix     = "profile_fix"
	PageError          = "error"
)

var pages = []string{PageHome, PageSignup, PageSignupComplete, PageProfile, PageProfileFix, PageError}

// defaultFn supports pipe usage: {{ .Value | default "-" }}
func defaultFn(fallback, value string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

var funcMap = template.FuncMap{
	"default": defaultFn,
	"kv": func(key, value string) domain.KeyValue {
		return domain.KeyValue{Key: key, Value: value}
	},
}

// Renderer executes the page templates. Every page shares the layout shell and
// the atoms.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcMap).ParseFS(templateFS, "templates/layout.tmpl", "templates/atoms.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %q: %w", name, err)
		}
		tpl, err := clone.ParseFS(templateFS, "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", name, err)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

// Render writes page with status. The page is rendered into a buffer first so
// a template failure never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("exec %q: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and images. Mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
