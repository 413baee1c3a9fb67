package savedwords

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/smarttranslator/internal/pdf"
)

type Format string

const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

var AllFormats = []Format{FormatYAML, FormatMarkdown, FormatPDF}

func (f *Format) Set(val string) error {
	for _, format := range AllFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "Format"
}

// Export writes every saved entry to w in insertion order. PDF output needs a
// file path; use ExportPDF.
func (s *Store) Export(ctx context.Context, w io.Writer, format Format) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(entries); err != nil {
			return fmt.Errorf("yaml.Encode > %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("yaml.Close > %w", err)
		}
		return nil
	case FormatMarkdown:
		if _, err := io.WriteString(w, Markdown(entries)); err != nil {
			return fmt.Errorf("io.WriteString > %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportPDF renders the saved entries as a PDF at pdfPath.
func (s *Store) ExportPDF(ctx context.Context, pdfPath string) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	if err := pdf.RenderMarkdown([]byte(Markdown(entries)), pdfPath); err != nil {
		return fmt.Errorf("pdf.RenderMarkdown > %w", err)
	}
	return nil
}

// Markdown formats entries as a table.
func Markdown(entries []Entry) string {
	var b strings.Builder
	b.WriteString("# Saved words\n\n")
	if len(entries) == 0 {
		b.WriteString("No saved words yet.\n")
		return b.String()
	}
	b.WriteString("| Original | Translation | Languages | Saved at |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			markdownCell(entry.Original),
			markdownCell(entry.Translated),
			LanguagePair(entry.SourceLanguage, entry.TargetLanguage),
			entry.SavedAt.UTC().Format(SavedAtLayout),
		)
	}
	return b.String()
}

func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// LanguagePair renders "en → VI", using "Auto" for an undetected source.
func LanguagePair(source, target string) string {
	if source == "" {
		source = "Auto"
	}
	return fmt.Sprintf("%s → %s", source, strings.ToUpper(target))
}
