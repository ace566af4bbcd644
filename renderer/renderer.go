// Package renderer renders the wallet as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// renderTemplate renders the template read from file with data.
//
// Rendering errors are returned as the rendered text, so that they show up
// where the report was expected.
func renderTemplate(name, file string, funcs template.FuncMap, data any) string {
	content, err := fs.ReadFile(templates, "templates/"+file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
