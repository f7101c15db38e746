package views

import (
	"embed"
	"html/template"

	"github.com/mamadbah2/productdesk/internal/domain/models"
)

//go:embed *.html
var files embed.FS

// PageTemplate is the name of the dashboard page template.
const PageTemplate = "page.html"

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("views").Funcs(template.FuncMap{
		"formFields": func() []models.FormField { return models.FormFields },
	}).ParseFS(files, "*.html"))
}
