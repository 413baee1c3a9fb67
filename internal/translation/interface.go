// Package translation talks to the remote translation API.
package translation

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=interface.go -destination=../mocks/translation/mock_translator.go -package=mock_translation

const (
	DefaultTargetLanguage = "vi"
	// An empty source language asks the API to detect it
	DefaultSourceLanguage = ""
)

// Translator sends one translation request and returns the parsed JSON body.
type Translator interface {
	Translate(ctx context.Context, req Request) (json.RawMessage, error)
}

// Request is the body posted to the translation endpoint.
type Request struct {
	Text           string `json:"text" validate:"required"`
	TargetLanguage string `json:"targetLanguage"`
	SourceLanguage string `json:"sourceLanguage"`
}

// WithDefaults fills the target language when it is empty.
func (r Request) WithDefaults() Request {
	if r.TargetLanguage == "" {
		r.TargetLanguage = DefaultTargetLanguage
	}
	return r
}

// Result is a single translation as returned by the API.
type Result struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// Envelope is the API's response shape.
type Envelope struct {
	IsSuccessful bool    `json:"isSuccessful"`
	Data         *Result `json:"data"`
}

// ParseEnvelope decodes body and reports whether it carries a successful result.
// Any other shape is treated as a failed translation.
func ParseEnvelope(body json.RawMessage) (Result, bool) {
	if len(body) == 0 {
		return Result{}, false
	}
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Result{}, false
	}
	if !envelope.IsSuccessful || envelope.Data == nil {
		return Result{}, false
	}
	return *envelope.Data, true
}
