// Package backend talks to the managed backend-as-a-service that owns
// accounts, sessions and task rows. It only knows the wire conventions shared
// by the auth and data APIs: base URL, public API key, JSON bodies and the
// error envelope. Endpoint-specific clients live in the modules that use them.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

const (
	apiKeyHeader     = "apikey"
	maxResponseBytes = 4 << 20
	healthPath       = "auth/v1/health"
)

// Request describes one call. Token, when set, authorises the call as the
// signed-in user; otherwise the public API key is sent as the bearer.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any
	Token  *oauth2.Token
}

type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return NewClientWithHTTPClient(cfg, httpClient)
}

func NewClientWithHTTPClient(cfg *Config, httpClient *http.Client) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimRight(cfg.URL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrURLInvalid, err)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     slog.Default().WithGroup("backend"),
	}, nil
}

// Do sends req and decodes a successful JSON response into out (which may be
// nil). Non-2xx responses are returned as *Error. No retries are attempted.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	if req == nil {
		return ErrRequestNil
	}

	endpoint := c.baseURL.ResolveReference(&url.URL{
		Path:     strings.TrimLeft(req.Path, "/"),
		RawQuery: req.Query.Encode(),
	})

	var body io.Reader

	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode backend request: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("build backend request: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	httpReq.Header.Set(apiKeyHeader, c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.httpClient

	if req.Token != nil {
		httpClient = &http.Client{
			Timeout: c.httpClient.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(req.Token),
				Base:   c.httpClient.Transport,
			},
		}
	} else {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "backend request failed",
			slog.String("method", method),
			slog.String("path", endpoint.Path),
			slog.String("error", err.Error()),
		)

		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	c.logger.DebugContext(ctx, "backend request completed",
		slog.String("method", method),
		slog.String("path", endpoint.Path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}

	return nil
}

// Ping checks that the backend answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: healthPath}, nil)
}

// errorEnvelope covers the shapes used by the auth API (msg, error_code,
// error/error_description) and the data API (message, code).
type errorEnvelope struct {
	Msg              string          `json:"msg"`
	Message          string          `json:"message"`
	ErrorDescription string          `json:"error_description"`
	Error            string          `json:"error"`
	ErrorCode        string          `json:"error_code"`
	Code             json.RawMessage `json:"code"`
}

func decodeError(status int, raw []byte) *Error {
	backendErr := &Error{Status: status}

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		backendErr.Message = strings.TrimSpace(string(raw))

		return backendErr
	}

	for _, candidate := range []string{envelope.Msg, envelope.Message, envelope.ErrorDescription, envelope.Error} {
		if candidate != "" {
			backendErr.Message = candidate

			break
		}
	}

	switch {
	case envelope.ErrorCode != "":
		backendErr.Code = envelope.ErrorCode
	case len(envelope.Code) > 0 && string(envelope.Code) != "null":
		if unquoted, err := strconv.Unquote(string(envelope.Code)); err == nil {
			backendErr.Code = unquoted
		} else {
			backendErr.Code = string(envelope.Code)
		}
	default:
		backendErr.Code = envelope.Error
	}

	return backendErr
}
