package popup

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/at-ishikawa/smarttranslator/internal/assets"
)

// DefaultTitle is shown in the popup header.
const DefaultTitle = "Smart Translator"

type Renderer struct {
	templates *template.Template
	title     string
}

// NewRenderer parses the popup templates from directory, falling back to the
// embedded ones.
func NewRenderer(directory string) (*Renderer, error) {
	templates, err := assets.ParsePopupTemplates(directory)
	if err != nil {
		return nil, fmt.Errorf("assets.ParsePopupTemplates() > %w", err)
	}
	return &Renderer{templates: templates, title: DefaultTitle}, nil
}

// Render returns the popup markup for view.
func (r *Renderer) Render(view View) (template.HTML, error) {
	var content bytes.Buffer
	if err := r.templates.ExecuteTemplate(&content, view.templateName(), view); err != nil {
		return "", fmt.Errorf("ExecuteTemplate(%s) > %w", view.templateName(), err)
	}

	var popup bytes.Buffer
	if err := r.templates.ExecuteTemplate(&popup, "popup", struct {
		Title   string
		Content template.HTML
	}{
		Title:   r.title,
		Content: template.HTML(content.String()),
	}); err != nil {
		return "", fmt.Errorf("ExecuteTemplate(popup) > %w", err)
	}
	return template.HTML(popup.String()), nil
}
