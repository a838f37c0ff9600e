// Package renderer turns reports into markdown, and markdown into terminal
// or HTML output.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// parsed holds every template, named after its file.
var parsed = template.Must(template.New("").Funcs(template.FuncMap{
	"cell": cell,
}).ParseFS(templates, "templates/*.md"))

// renderTemplate executes the template 'file' on data.
func renderTemplate(file string, data any) string {
	var b strings.Builder
	if err := parsed.ExecuteTemplate(&b, file, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
