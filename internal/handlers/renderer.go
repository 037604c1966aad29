package handlers

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"devtoolbox_echo/internal/middleware"
	"devtoolbox_echo/internal/views"
)

// TemplateRenderer is an html/template renderer for Echo.
// Every page is parsed into its own clone of the base layout so pages can define
// their own blocks.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses layouts, partials and pages from fsys
func NewTemplateRenderer(fsys fs.FS) (*TemplateRenderer, error) {
	templates := make(map[string]*template.Template)

	base, err := template.New("").Funcs(templateFuncs()).ParseFS(fsys, "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	if _, err := base.ParseFS(fsys, "templates/partials/*.html"); err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	pages, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		pageTemplate, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := pageTemplate.ParseFS(fsys, page); err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		templates[path.Base(page)] = pageTemplate
	}

	return &TemplateRenderer{templates: templates}, nil
}

// Render executes the base layout for the named page.
// The request's notification is filled in when data is a *PageData.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	if page, ok := data.(*PageData); ok && c != nil {
		page.Notification = middleware.Notifier(c).Current()
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"dataURL": func(img *views.Image) template.URL {
			if img == nil {
				return ""
			}
			return template.URL("data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data))
		},
		"byteSize": byteSize,
	}
}

func byteSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
