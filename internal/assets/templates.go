// Package assets embeds the popup, status and dev server templates and the
// instructions page. Each template can be overridden by a file of the same
// name in a directory; the embedded copy is used when that file is missing or
// fails to parse.
package assets

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	PopupTemplateName  = "popup.html.tmpl"
	StatusTemplateName = "status.html.tmpl"
	PageTemplateName   = "page.html.tmpl"
	InstructionsName   = "instructions.md"
)

//go:embed templates/*.html.tmpl templates/instructions.md
var embedded embed.FS

func ParsePopupTemplates(directory string) (*template.Template, error) {
	return parseTemplateWithFallback(directory, PopupTemplateName)
}

func ParseStatusTemplate(directory string) (*template.Template, error) {
	return parseTemplateWithFallback(directory, StatusTemplateName)
}

func ParsePageTemplate(directory string) (*template.Template, error) {
	return parseTemplateWithFallback(directory, PageTemplateName)
}

// Instructions returns the markdown at path, or the embedded copy when path is empty.
func Instructions(path string) ([]byte, error) {
	if path == "" {
		return embedded.ReadFile("templates/" + InstructionsName)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return content, nil
}

func parseTemplateWithFallback(directory string, name string) (*template.Template, error) {
	if directory != "" {
		templatePath := filepath.Join(directory, name)
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(name).ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a template, using the embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(name).ParseFS(embedded, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS(%s) > %w", name, err)
	}
	return tmpl, nil
}
