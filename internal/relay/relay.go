// Package relay performs translation calls on behalf of the page-side popup.
package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/smarttranslator/internal/translation"
)

const ActionTranslate = "translate"

// Message is a request from the page.
type Message struct {
	Action         string `json:"action"`
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
}

// Response is sent back for a translate message. Data holds the API body as-is.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Messenger delivers a message to the relay and calls reply once with the
// response. reply is never called for messages the relay does not handle.
type Messenger interface {
	Send(ctx context.Context, msg Message, reply func(Response))
}

// Pending is the response of a dispatched message. It stays open until the
// network step finishes.
type Pending struct {
	done     chan struct{}
	once     sync.Once
	response Response
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(response Response) {
	p.once.Do(func() {
		p.response = response
		close(p.done)
	})
}

// Done is closed when the response is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the response is available or ctx is done.
func (p *Pending) Wait(ctx context.Context) (Response, error) {
	select {
	case <-p.done:
		return p.response, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

type Relay struct {
	translator translation.Translator
	defaults   translation.Request
	logger     *slog.Logger
}

var _ Messenger = (*Relay)(nil)

// New returns a relay forwarding to translator. Empty languages in messages
// fall back to targetLanguage and sourceLanguage.
func New(translator translation.Translator, targetLanguage, sourceLanguage string) *Relay {
	return &Relay{
		translator: translator,
		defaults: translation.Request{
			TargetLanguage: targetLanguage,
			SourceLanguage: sourceLanguage,
		},
		logger: slog.Default(),
	}
}

// Dispatch starts handling msg. ok is false when the action is unknown, in
// which case no response will ever be produced.
func (r *Relay) Dispatch(ctx context.Context, msg Message) (pending *Pending, ok bool) {
	if msg.Action != ActionTranslate {
		r.logger.Debug("ignoring relay message", "action", msg.Action)
		return nil, false
	}

	pending = newPending()
	go func() {
		pending.resolve(r.translate(ctx, msg))
	}()
	return pending, true
}

// Send implements Messenger for callers in the same process.
func (r *Relay) Send(ctx context.Context, msg Message, reply func(Response)) {
	pending, ok := r.Dispatch(ctx, msg)
	if !ok {
		return
	}
	go func() {
		<-pending.Done()
		reply(pending.response)
	}()
}

func (r *Relay) translate(ctx context.Context, msg Message) Response {
	req := translation.Request{
		Text:           msg.Text,
		TargetLanguage: msg.TargetLanguage,
		SourceLanguage: msg.SourceLanguage,
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = r.defaults.TargetLanguage
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = r.defaults.SourceLanguage
	}

	body, err := r.translator.Translate(ctx, req)
	if err != nil {
		r.logger.Error("Translation error", "text", msg.Text, "error", err)
		message := err.Error()
		if message == "" {
			message = "Translation failed"
		}
		return Response{Success: false, Error: message}
	}
	return Response{Success: true, Data: body}
}
