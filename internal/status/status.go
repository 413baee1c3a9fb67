// Package status tells whether the extension is active in the current tab.
package status

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/at-ishikawa/smarttranslator/internal/assets"
	"github.com/at-ishikawa/smarttranslator/internal/relay"
)

//go:generate mockgen -source=status.go -destination=../mocks/status/mock_status.go -package=mock_status

const (
	LabelActive   = "Extension Active"
	LabelInactive = "Extension Inactive"
)

// TabQuerier finds the active tab. A nil tab means there is none.
type TabQuerier interface {
	ActiveTab(ctx context.Context) (*relay.Tab, error)
}

type Status struct {
	Active bool
	Label  string
	Tab    *relay.Tab
}

type Indicator struct {
	querier  TabQuerier
	template *template.Template
}

// NewIndicator parses the status template from templateDirectory, falling back
// to the embedded one.
func NewIndicator(querier TabQuerier, templateDirectory string) (*Indicator, error) {
	tmpl, err := assets.ParseStatusTemplate(templateDirectory)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseStatusTemplate() > %w", err)
	}
	return &Indicator{querier: querier, template: tmpl}, nil
}

// Load queries the active tab once. A failed query reads as inactive.
func (indicator *Indicator) Load(ctx context.Context) Status {
	tab, err := indicator.querier.ActiveTab(ctx)
	if err != nil {
		slog.Default().Debug("failed to query the active tab", slog.Any("error", err))
		return Status{Active: false, Label: LabelInactive}
	}
	if tab == nil {
		return Status{Active: false, Label: LabelInactive}
	}
	return Status{Active: true, Label: LabelActive, Tab: tab}
}

// HTML renders status as the indicator dot and label.
func (indicator *Indicator) HTML(status Status) (template.HTML, error) {
	var buf bytes.Buffer
	if err := indicator.template.ExecuteTemplate(&buf, "status", status); err != nil {
		return "", fmt.Errorf("ExecuteTemplate(status) > %w", err)
	}
	return template.HTML(buf.String()), nil
}
