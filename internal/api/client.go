package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/detective-ambiental/detective/internal/cli/auth"
)

// Client issues HTTP requests against the Detective Ambiental backend.
// All endpoints live under <base>/api. For authenticated requests it
// attaches "Authorization: Bearer <token>" from the token store; every
// failure is normalized into *Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenStore
	logger     zerolog.Logger
}

// New creates an API client for the given base URL, e.g.
// "https://detective.uni.mx".
func New(baseURL string, tokens auth.TokenStore, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		logger:     logger,
	}
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// errorBody is the error shape the backend is expected to return.
type errorBody struct {
	Error string `json:"error"`
}

// newRequestID returns a ULID used to correlate a request with backend
// logs via the X-Request-ID header.
func newRequestID() string {
	return ulid.Make().String()
}

// kindForStatus maps an HTTP status to an error kind. A 401 with a local
// token present means the backend rejected it, not that we lack one.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindUnknown
	}
}

// do performs one round-trip. fallback is the localized message used when
// the response carries no {"error": "..."} body. out, when non-nil, is
// decoded from a 2xx response body.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, authed bool, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return NewError(KindUnknown, fallback)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reqBody)
	if err != nil {
		return NewError(KindUnknown, fallback)
	}
	req.Header.Set("X-Request-ID", newRequestID())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, err := c.tokens.Get()
		if err != nil || token == "" {
			return NewError(KindUnauthenticated, "No has iniciado sesión")
		}
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return NewError(KindTransport, fallback)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("request_id", req.Header.Get("X-Request-ID")).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fallback
		var errResp errorBody
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
		}
		return NewError(kindForStatus(resp.StatusCode), message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return NewError(KindUnknown, fallback)
		}
	}

	return nil
}
