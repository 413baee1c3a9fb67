package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"resty.dev/v3"
)

const translatePath = "/Translation/translate"

// ErrHTTPStatus is wrapped by StatusError.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// Client posts translation requests. It makes exactly one attempt per call.
type Client struct {
	httpClient *resty.Client
	validate   *validator.Validate
}

var _ Translator = (*Client)(nil)

func NewClient(baseURL string) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetHeader("Accept", "application/octet-stream")
	client.SetHeader("Content-Type", "application/json")
	client.SetRetryCount(0)

	return &Client{
		httpClient: client,
		validate:   validator.New(),
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Translate posts req and returns the response body, which must be valid JSON.
func (client *Client) Translate(ctx context.Context, req Request) (json.RawMessage, error) {
	req = req.WithDefaults()
	if err := client.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate.Struct > %w", err)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		Post(translatePath)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() || response.StatusCode() < 200 || response.StatusCode() > 299 {
		return nil, &StatusError{StatusCode: response.StatusCode(), Body: response.String()}
	}

	body := []byte(response.String())
	if !json.Valid(body) {
		return nil, fmt.Errorf("json.Valid(%s): invalid JSON response body", response.String())
	}
	slog.Default().Debug("translation response",
		"text", req.Text,
		"targetLanguage", req.TargetLanguage,
		"status", response.StatusCode(),
	)
	return json.RawMessage(body), nil
}
