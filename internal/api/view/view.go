// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkpad/webapps/internal/core/domain"
	"github.com/inkpad/webapps/internal/core/ports"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "layout.html"

// Page is the data every template receives.
type Page struct {
	Title string
	Actor ports.Actor

	Posts []*domain.Post
	Post  *domain.Post
	Notes []*domain.Note
	Note  *domain.Note
	Tasks []*domain.Task
}

// Owns reports whether the current actor owns a resource.
func (p Page) Owns(ownerID string) bool {
	return !p.Actor.Anonymous() && p.Actor.UserID == ownerID
}

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout into its own template set.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04")
	},
}

func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		base := path.Base(file)
		if base == layoutFile {
			continue
		}
		tmpl, err := template.New(base).Funcs(funcs).ParseFS(templatesFS, "templates/"+layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		r.pages[strings.TrimSuffix(base, ".html")] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
