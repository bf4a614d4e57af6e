// Package render turns a view.Page into HTML for the browser and into a
// plain-text table for the terminal.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/user-locations/internal/view"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

type htmlData struct {
	Page         view.Page
	Placeholder  string
	Columns      int
	EmptyMessage string
}

// HTML writes the full locations page.
func HTML(w io.Writer, p view.Page) error {
	data := htmlData{
		Page:         p,
		Placeholder:  view.SearchPlaceholder,
		Columns:      view.ColumnCount,
		EmptyMessage: view.EmptyMessage,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
