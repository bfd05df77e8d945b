// Package translate implements the HTTP client for the LLM translation
// endpoint. One Translate call issues exactly one outbound request and
// yields either a usable Result or a *ServiceError; there is no retry.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/threadlingo/threadlingo/internal/config"
)

// ServiceError reports a failed translation request: transport failure,
// non-2xx status, or a malformed response body.
type ServiceError struct {
	Status int   // HTTP status, 0 for transport/parse failures
	Cause  error // underlying error, may be nil
	Detail string
}

func (e *ServiceError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("translation service: HTTP %d: %s", e.Status, e.Detail)
	case e.Cause != nil:
		return fmt.Sprintf("translation service: %s: %v", e.Detail, e.Cause)
	default:
		return "translation service: " + e.Detail
	}
}

func (e *ServiceError) Unwrap() error { return e.Cause }

// Client talks to an Ollama-style generate endpoint. It is safe for
// concurrent use; all event handlers share one instance for the process
// lifetime.
type Client struct {
	apiURL     string
	apiToken   string
	model      string
	httpClient *http.Client
}

// NewClient builds a Client from the translate config. The underlying
// http.Client owns the connection pool that acts as the shared session.
func NewClient(cfg config.TranslateConfig) *Client {
	return &Client{
		apiURL:   cfg.APIURL,
		apiToken: cfg.APIToken,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Close releases the pooled connections. Safe to call after in-flight
// requests have finished.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
	slog.Debug("translate: session closed")
}

// Translate sends text to the LLM endpoint and returns the parsed
// multi-language result. Failures of any kind surface as *ServiceError;
// callers decide whether to drop the event.
func (c *Client) Translate(ctx context.Context, text string) (*Result, error) {
	body := map[string]any{
		"model":  c.model,
		"prompt": buildPrompt(text),
		"stream": false,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, &ServiceError{Detail: "marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(data))
	if err != nil {
		return nil, &ServiceError{Detail: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Detail: "HTTP request", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{Detail: "read response", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{Status: resp.StatusCode, Detail: trimBody(raw)}
	}

	return parseResult(raw)
}

// trimBody shortens an error body for logging.
func trimBody(raw []byte) string {
	s := string(bytes.TrimSpace(raw))
	if len(s) > 300 {
		s = s[:300]
	}
	return s
}
