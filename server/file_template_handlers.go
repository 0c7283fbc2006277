package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path"
)

//go:embed templates/*.html
var templateFiles embed.FS

// parseTemplate parses one page from the embedded templates directory.
func parseTemplate(name string) (*template.Template, error) {
	tmpl, err := template.New(name).ParseFS(templateFiles, path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("[server parseTemplate] %s: %w", name, err)
	}
	return tmpl, nil
}

// renderTemplate executes into a buffer first so a failed render never
// leaves a half written page behind.
func renderTemplate(w http.ResponseWriter, status int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
