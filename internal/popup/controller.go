// Package popup shows translations of the user's selection in a popup
// anchored to the selected text. It is independent of any browser: the host
// page is reached through the Document port and timers through Scheduler.
package popup

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/at-ishikawa/smarttranslator/internal/relay"
	"github.com/at-ishikawa/smarttranslator/internal/savedwords"
	"github.com/at-ishikawa/smarttranslator/internal/translation"
)

const (
	DebounceDelay = 100 * time.Millisecond
	FadeDuration  = 200 * time.Millisecond

	// MaxSelectionLength is exclusive and counted in runes (Unicode code
	// points), so a character outside the BMP counts once, not as a UTF-16 pair.
	MaxSelectionLength = 500
	// SavedListSize is how many saved words the list view shows.
	SavedListSize      = 5

	KeyEscape = "Escape"
)

// Actions a host can dispatch for clicks on elements carrying data-action.
const (
	ActionClose      = "close"
	ActionSave       = "save"
	ActionViewSaved  = "view-saved"
	ActionBack       = "back"
	ActionClearSaved = "clear-saved"
)

// WordStore is the part of savedwords.Store the popup uses.
type WordStore interface {
	Save(ctx context.Context, entry savedwords.Entry) (savedwords.SaveStatus, error)
	Recent(ctx context.Context, n int) ([]savedwords.Entry, error)
	Clear(ctx context.Context) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(question string) bool

func (f ConfirmFunc) Confirm(question string) bool { return f(question) }

type Options struct {
	TargetLanguage string
	SourceLanguage string
	// Confirmer is asked before clearing saved words. Nil clears without asking.
	Confirmer Confirmer
	Scheduler Scheduler
	Logger    *slog.Logger
}

// Controller owns the single popup. Events may arrive on any goroutine; they
// are handled one at a time.
type Controller struct {
	document  Document
	messenger relay.Messenger
	store     WordStore
	renderer  *Renderer
	scheduler Scheduler
	confirmer Confirmer
	logger    *slog.Logger

	targetLanguage string
	sourceLanguage string

	mu          sync.Mutex
	state       State
	popup       *Element
	generation  int
	original    string
	lastResult  *translation.Result
	savedWords  []savedwords.Entry
	notice      string
	translating bool
	debounce    Timer
}

func NewController(document Document, messenger relay.Messenger, store WordStore, renderer *Renderer, options Options) *Controller {
	scheduler := options.Scheduler
	if scheduler == nil {
		scheduler = RealScheduler()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	targetLanguage := options.TargetLanguage
	if targetLanguage == "" {
		targetLanguage = translation.DefaultTargetLanguage
	}
	return &Controller{
		document:       document,
		messenger:      messenger,
		store:          store,
		renderer:       renderer,
		scheduler:      scheduler,
		confirmer:      options.Confirmer,
		logger:         logger,
		targetLanguage: targetLanguage,
		sourceLanguage: options.SourceLanguage,
		state:          StateHidden,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Popup returns a copy of the current popup element, or false when none is shown.
func (c *Controller) Popup() (Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.popup == nil {
		return Element{}, false
	}
	return *c.popup, true
}

// Translating reports whether a translation request is in flight.
func (c *Controller) Translating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.translating
}

// SelectionChanged reads the selection once DebounceDelay has passed without
// another change.
func (c *Controller) SelectionChanged(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = c.scheduler.AfterFunc(DebounceDelay, func() {
		c.readSelection(ctx)
	})
}

func (c *Controller) readSelection(ctx context.Context) {
	c.mu.Lock()
	c.debounce = nil

	selection, ok := c.document.Selection()
	text := strings.TrimSpace(selection.Text)
	length := utf8.RuneCountInString(text)
	if !ok || length == 0 || length >= MaxSelectionLength {
		c.dismissLocked()
		c.mu.Unlock()
		return
	}
	if c.translating {
		c.logger.Debug("ignore a selection while a translation is in flight",
			slog.Int("length", length),
		)
		c.mu.Unlock()
		return
	}

	c.showLocked(text, selection.Rect)
	c.translating = true
	generation := c.generation
	msg := relay.Message{
		Action:         relay.ActionTranslate,
		Text:           text,
		TargetLanguage: c.targetLanguage,
		SourceLanguage: c.sourceLanguage,
	}
	c.mu.Unlock()

	c.messenger.Send(ctx, msg, func(response relay.Response) {
		c.handleResponse(generation, response)
	})
}

// showLocked replaces any popup with a new one in the loading state.
func (c *Controller) showLocked(text string, selection Rect) {
	if c.popup != nil {
		c.document.Remove(c.popup)
		c.popup = nil
	}
	c.generation++
	c.original = text
	c.lastResult = nil
	c.savedWords = nil
	c.notice = ""
	c.state = StateLoading

	viewport := c.document.Viewport()
	placement := Anchor(selection, viewport)
	el := &Element{
		ID:    fmt.Sprintf("smart-translator-popup-%d", c.generation),
		Left:  placement.Left,
		Top:   placement.Top,
		Arrow: placement.Arrow,
		HTML:  c.render(NewLoadingView(text)),
	}
	c.document.Mount(el)
	c.popup = el

	el.Visible = true
	adjusted := Adjust(placement, c.document.Measure(el), selection, viewport)
	el.Left = adjusted.Left
	el.Top = adjusted.Top
	el.Arrow = adjusted.Arrow
	c.document.Update(el)
}

func (c *Controller) handleResponse(generation int, response relay.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.translating = false
	if c.popup == nil || generation != c.generation {
		c.logger.Debug("drop a translation for a closed popup", slog.Int("generation", generation))
		return
	}

	if !response.Success {
		c.logger.Warn("translation request failed", slog.String("error", response.Error))
		c.showErrorLocked(MessageConnectionFailed)
		return
	}
	result, ok := translation.ParseEnvelope(response.Data)
	if !ok {
		c.logger.Warn("translation API returned no result", slog.String("body", string(response.Data)))
		c.showErrorLocked(MessageTranslationFailed)
		return
	}

	c.lastResult = &result
	c.state = StateShowingTranslation
	c.redrawLocked()
}

func (c *Controller) showErrorLocked(message string) {
	c.state = StateShowingError
	c.popup.HTML = c.render(NewErrorView(c.original, message))
	c.document.Update(c.popup)
}

// PointerDown dismisses the popup when target is outside of it.
func (c *Controller) PointerDown(target Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.popup == nil || c.document.Contains(c.popup, target) {
		return
	}
	c.dismissLocked()
}

func (c *Controller) KeyDown(key string) {
	if key != KeyEscape {
		return
	}
	c.Close()
}

func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dismissLocked()
}

// dismissLocked hides the popup and removes it once the fade has finished.
func (c *Controller) dismissLocked() {
	if c.popup == nil {
		return
	}
	el := c.popup
	c.popup = nil
	c.state = StateHidden
	c.lastResult = nil
	c.savedWords = nil
	c.notice = ""

	el.Visible = false
	c.document.Update(el)
	c.scheduler.AfterFunc(FadeDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.document.Remove(el)
	})
}

// Save stores the translation being shown.
func (c *Controller) Save(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateShowingTranslation || c.lastResult == nil || c.store == nil {
		return
	}
	status, err := c.store.Save(ctx, savedwords.Entry{
		Original:       c.lastResult.OriginalText,
		Translated:     c.lastResult.TranslatedText,
		SourceLanguage: c.lastResult.SourceLanguage,
		TargetLanguage: c.lastResult.TargetLanguage,
	})
	switch {
	case err != nil:
		c.logger.Error("failed to save a word", slog.Any("error", err))
		c.notice = MessageSaveFailed
	case status == savedwords.Duplicate:
		c.notice = MessageWordAlreadySaved
	default:
		c.notice = MessageWordSaved
	}
	c.redrawLocked()
}

// ViewSaved switches to the list of the most recently saved words.
func (c *Controller) ViewSaved(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateShowingTranslation || c.store == nil {
		return
	}
	entries, err := c.store.Recent(ctx, SavedListSize)
	c.notice = ""
	if err != nil {
		c.logger.Error("failed to load saved words", slog.Any("error", err))
		c.notice = MessageLoadSavedFailed
	}
	c.savedWords = entries
	c.state = StateShowingSavedList
	c.redrawLocked()
}

// Back returns from the saved list to the last translation.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateShowingSavedList || c.lastResult == nil {
		return
	}
	c.state = StateShowingTranslation
	c.savedWords = nil
	c.notice = ""
	c.redrawLocked()
}

// ClearSaved empties the store after the user confirms.
func (c *Controller) ClearSaved(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateShowingSavedList || c.store == nil {
		return
	}
	if c.confirmer != nil && !c.confirmer.Confirm("Clear all saved words?") {
		return
	}
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error("failed to clear saved words", slog.Any("error", err))
		c.notice = MessageClearSavedFailed
	} else {
		c.savedWords = nil
		c.notice = MessageSavedCleared
	}
	c.redrawLocked()
}

// Click dispatches a data-action of a popup button.
func (c *Controller) Click(ctx context.Context, action string) {
	switch action {
	case ActionClose:
		c.Close()
	case ActionSave:
		c.Save(ctx)
	case ActionViewSaved:
		c.ViewSaved(ctx)
	case ActionBack:
		c.Back()
	case ActionClearSaved:
		c.ClearSaved(ctx)
	default:
		c.logger.Debug("unknown popup action", slog.String("action", action))
	}
}

func (c *Controller) redrawLocked() {
	if c.popup == nil {
		return
	}
	var view View
	switch c.state {
	case StateShowingTranslation:
		view = NewTranslationView(*c.lastResult, c.notice)
	case StateShowingSavedList:
		view = NewSavedListView(c.savedWords, c.notice)
	default:
		return
	}
	c.popup.HTML = c.render(view)
	c.document.Update(c.popup)
}

func (c *Controller) render(view View) template.HTML {
	markup, err := c.renderer.Render(view)
	if err != nil {
		c.logger.Error("failed to render the popup", slog.Any("error", err))
		return Escape(MessageTranslationFailed)
	}
	return markup
}
