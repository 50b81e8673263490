// Package rest implements the remote data collaborator ports over the
// console's HTTP API: record stores, the authenticator, and the audit sink.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
)

const defaultRequestTimeout = 15 * time.Second

// TokenSource supplies the current bearer token, or "" when logged out.
// Wired to the session manager's Credential method.
type TokenSource func() string

// Client is a thin JSON HTTP client shared by the typed stores.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     zerolog.Logger
}

func NewClient(baseURL string, token TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
		token:   token,
		log:     log,
	}
}

// errorBody is the API's error envelope.
type errorBody struct {
	Error      string                  `json:"error"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token := ""
	if c.token != nil {
		token = c.token()
	}
	return c.doWithToken(ctx, method, path, token, body, out)
}

// doWithToken performs one request/response exchange and maps failures into
// the domain taxonomy. Transport failures are retryable; status-coded
// failures are not.
func (c *Client) doWithToken(ctx context.Context, method, path, token string, body, out any) error {
	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RemoteError{Op: op, Retryable: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapStatus(op, resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.RemoteError{Op: op, Retryable: false, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

func (c *Client) mapStatus(op string, resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	cause := fmt.Errorf("%s", eb.Error)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrInvalidCredentials
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrPermissionDenied
	case resp.StatusCode == http.StatusUnprocessableEntity && len(eb.Violations) > 0:
		return &domain.ValidationError{Violations: eb.Violations}
	case resp.StatusCode >= 500:
		return &domain.RemoteError{Op: op, StatusCode: resp.StatusCode, Retryable: true, Err: cause}
	default:
		return &domain.RemoteError{Op: op, StatusCode: resp.StatusCode, Retryable: false, Err: cause}
	}
}
