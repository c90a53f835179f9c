// Package view holds the HTML pages served around registration.
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every embedded page. Template names are the file names.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
