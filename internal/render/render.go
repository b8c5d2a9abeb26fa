// Package render turns a page name and its view variables into HTML.
// Templates and static assets are embedded in the binary.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"detention/internal/errors"
	"detention/internal/pages"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

//go:embed public
var publicFS embed.FS

const layoutTemplate = "layout"

// Renderer implements echo.Renderer over one template set per page
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// New parses the layout once and clones it for every page so each page can
// define its own "title" and "content" blocks.
func New() (*Renderer, error) {
	layout, err := template.New(layoutTemplate).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages.Names))}
	for _, name := range pages.Names {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/pages/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

// Render writes the named page. Unknown page names are a caller error.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return errors.RenderFailed(name, fmt.Errorf("no such page"))
	}
	if err := t.ExecuteTemplate(w, layoutTemplate, data); err != nil {
		return errors.RenderFailed(name, err)
	}
	return nil
}

// Public returns the static assets served next to the pages
func Public() fs.FS {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		// The directory is embedded at build time
		panic(err)
	}
	return sub
}
