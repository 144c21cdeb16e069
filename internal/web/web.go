// Package web holds the server-rendered pages.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer executes page templates into a buffer first, so a template error
// becomes an inline error page instead of a half-written response.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named page with status. On failure it writes a 500 with
// a short error message.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("❌ Rendering %s failed: %v", name, err)
		writeInlineError(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

const inlineError = `<!DOCTYPE html><html><body><p class="error">Something went wrong while showing this page.</p><a href="/">Back To Home</a></body></html>`

func writeInlineError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(inlineError))
}
