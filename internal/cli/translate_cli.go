package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/at-ishikawa/smarttranslator/internal/popup"
	"github.com/at-ishikawa/smarttranslator/internal/relay"
	"github.com/at-ishikawa/smarttranslator/internal/savedwords"
	"github.com/at-ishikawa/smarttranslator/internal/translation"
)

const quitCommand = ":q"

var (
	ErrTranslationFailed = errors.New(popup.MessageTranslationFailed)
	ErrUnhandledMessage  = errors.New("message was not handled by the relay")
)

// Dispatcher hands a message to the relay and returns its pending response.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg relay.Message) (*relay.Pending, bool)
}

// WordSaver is the part of savedwords.Store the CLI uses.
type WordSaver interface {
	Save(ctx context.Context, entry savedwords.Entry) (savedwords.SaveStatus, error)
}

// TranslateCLI translates text typed into the terminal.
type TranslateCLI struct {
	*InteractiveCLI
	dispatcher     Dispatcher
	saver          WordSaver
	targetLanguage string
	sourceLanguage string
	autoSave       bool
}

// NewTranslateCLI returns a CLI reading from stdin. A nil saver disables saving.
func NewTranslateCLI(
	stdin io.Reader,
	stdout io.Writer,
	dispatcher Dispatcher,
	saver WordSaver,
	targetLanguage string,
	sourceLanguage string,
	autoSave bool,
) *TranslateCLI {
	return &TranslateCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		dispatcher:     dispatcher,
		saver:          saver,
		targetLanguage: targetLanguage,
		sourceLanguage: sourceLanguage,
		autoSave:       autoSave,
	}
}

// Translate sends text through the relay and waits for the result.
func (cli *TranslateCLI) Translate(ctx context.Context, text string) (translation.Result, error) {
	pending, ok := cli.dispatcher.Dispatch(ctx, relay.Message{
		Action:         relay.ActionTranslate,
		Text:           text,
		TargetLanguage: cli.targetLanguage,
		SourceLanguage: cli.sourceLanguage,
	})
	if !ok {
		return translation.Result{}, ErrUnhandledMessage
	}
	response, err := pending.Wait(ctx)
	if err != nil {
		return translation.Result{}, fmt.Errorf("pending.Wait() > %w", err)
	}
	if !response.Success {
		return translation.Result{}, fmt.Errorf("relay > %s", response.Error)
	}
	result, ok := translation.ParseEnvelope(response.Data)
	if !ok {
		return translation.Result{}, ErrTranslationFailed
	}
	return result, nil
}

// PrintResult writes the translation and its language pair.
func (cli *TranslateCLI) PrintResult(result translation.Result) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s", result.TranslatedText)
	_, _ = fmt.Fprint(cli.stdoutWriter, "  ")
	_, _ = cli.italic.Fprintf(cli.stdoutWriter, "(%s)", savedwords.LanguagePair(result.SourceLanguage, result.TargetLanguage))
	_, _ = fmt.Fprintln(cli.stdoutWriter)
}

// SaveResult stores result and prints the outcome.
func (cli *TranslateCLI) SaveResult(ctx context.Context, result translation.Result) error {
	if cli.saver == nil {
		return nil
	}
	status, err := cli.saver.Save(ctx, savedwords.Entry{
		Original:       result.OriginalText,
		Translated:     result.TranslatedText,
		SourceLanguage: result.SourceLanguage,
		TargetLanguage: result.TargetLanguage,
	})
	if err != nil {
		_, _ = cli.red.Fprintln(cli.stdoutWriter, popup.MessageSaveFailed)
		return fmt.Errorf("saver.Save() > %w", err)
	}
	if status == savedwords.Duplicate {
		_, _ = cli.italic.Fprintln(cli.stdoutWriter, popup.MessageWordAlreadySaved)
		return nil
	}
	_, _ = cli.green.Fprintln(cli.stdoutWriter, popup.MessageWordSaved)
	return nil
}

// Session reads one line and translates it. A blank line is skipped and
// ":q" or the end of input finishes the session.
func (cli *TranslateCLI) Session(ctx context.Context) error {
	_, _ = cli.bold.Fprint(cli.stdoutWriter, "Text: ")
	line, err := cli.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(cli.stdoutWriter)
			return errEnd
		}
		return fmt.Errorf("readLine() > %w", err)
	}

	text := strings.TrimSpace(line)
	if text == quitCommand {
		return errEnd
	}
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) >= popup.MaxSelectionLength {
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Text must be shorter than %d characters\n", popup.MaxSelectionLength)
		return nil
	}

	result, err := cli.Translate(ctx, text)
	if err != nil {
		message := popup.MessageConnectionFailed
		if errors.Is(err, ErrTranslationFailed) {
			message = popup.MessageTranslationFailed
		}
		slog.Default().Debug("failed to translate", slog.Any("error", err))
		_, _ = cli.red.Fprintln(cli.stdoutWriter, message)
		return nil
	}
	cli.PrintResult(result)

	if cli.saver == nil {
		return nil
	}
	if !cli.autoSave {
		_, _ = fmt.Fprint(cli.stdoutWriter, "Save? [y/N]: ")
		answer, err := cli.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("readLine() > %w", err)
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			return nil
		}
	}
	if err := cli.SaveResult(ctx, result); err != nil {
		slog.Default().Error("failed to save a word", slog.Any("error", err))
	}
	return nil
}
