package popup

import (
	"html"
	"html/template"

	"github.com/at-ishikawa/smarttranslator/internal/savedwords"
	"github.com/at-ishikawa/smarttranslator/internal/translation"
)

// State is the lifecycle state of the popup.
type State string

const (
	StateHidden             State = "hidden"
	StateLoading            State = "loading"
	StateShowingTranslation State = "showing-translation"
	StateShowingError       State = "showing-error"
	StateShowingSavedList   State = "showing-saved-list"
)

// Messages shown in the popup.
const (
	MessageConnectionFailed  = "Unable to translate. Please check your connection."
	MessageTranslationFailed = "Translation failed. Please try again."
	MessageWordSaved         = "Word saved!"
	MessageWordAlreadySaved  = "Word already saved!"
	MessageSaveFailed        = "Failed to save word"
	MessageLoadSavedFailed   = "Failed to load saved words"
	MessageClearSavedFailed  = "Failed to clear saved words"
	MessageSavedCleared      = "Saved words cleared"
)

// Escape converts user-sourced text into HTML with entities escaped. Every
// string that reaches a popup template goes through it.
func Escape(s string) template.HTML {
	return template.HTML(html.EscapeString(s))
}

// View is the data one popup state renders from.
type View interface {
	templateName() string
}

type LoadingView struct {
	Original template.HTML
}

func (LoadingView) templateName() string { return "loading" }

type TranslationView struct {
	Original   template.HTML
	Translated template.HTML
	Languages  template.HTML
	Notice     template.HTML
}

func (TranslationView) templateName() string { return "translation" }

type ErrorView struct {
	Original template.HTML
	Message  template.HTML
}

func (ErrorView) templateName() string { return "error" }

type SavedWordView struct {
	Original   template.HTML
	Translated template.HTML
	Languages  template.HTML
}

type SavedListView struct {
	Entries []SavedWordView
	Notice  template.HTML
}

func (SavedListView) templateName() string { return "saved-list" }

func NewLoadingView(original string) LoadingView {
	return LoadingView{Original: Escape(original)}
}

func NewTranslationView(result translation.Result, notice string) TranslationView {
	return TranslationView{
		Original:   Escape(result.OriginalText),
		Translated: Escape(result.TranslatedText),
		Languages:  Escape(savedwords.LanguagePair(result.SourceLanguage, result.TargetLanguage)),
		Notice:     Escape(notice),
	}
}

func NewErrorView(original string, message string) ErrorView {
	return ErrorView{Original: Escape(original), Message: Escape(message)}
}

func NewSavedListView(entries []savedwords.Entry, notice string) SavedListView {
	view := SavedListView{Notice: Escape(notice)}
	for _, entry := range entries {
		view.Entries = append(view.Entries, SavedWordView{
			Original:   Escape(entry.Original),
			Translated: Escape(entry.Translated),
			Languages:  Escape(savedwords.LanguagePair(entry.SourceLanguage, entry.TargetLanguage)),
		})
	}
	return view
}
