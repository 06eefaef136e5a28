// Package mail renders and delivers transactional email.
package mail

import (
	"bytes"
	"embed"
	"html/template"

	"contactbook/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrUnknownTemplate is returned for messages naming a template that does not exist.
var ErrUnknownTemplate = errors.New("unknown mail template")

// Renderer turns a template name and its variables into an HTML body.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("mail").Option("missingkey=zero").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse mail templates")
	}

	return &Renderer{templates: tmpl}, nil
}

// Render executes the named template. Names omit the .html extension.
func (r *Renderer) Render(name string, vars map[string]string) (string, error) {
	tmpl := r.templates.Lookup(name + ".html")
	if tmpl == nil {
		return "", errors.Wrapf(ErrUnknownTemplate, "%q", name)
	}

	if vars == nil {
		vars = map[string]string{}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", errors.Wrapf(err, "render %s", name)
	}

	return buf.String(), nil
}
