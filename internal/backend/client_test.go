package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithHTTPClient(&Config{
		URL:     server.URL,
		APIKey:  "anon-key",
		Timeout: time.Second,
	}, server.Client())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

func TestClientDoSendsAPIKeyAndDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("expected apikey header, got %q", got)
		}

		if got := r.Header.Get("Authorization"); got != "Bearer anon-key" {
			t.Errorf("expected anon bearer, got %q", got)
		}

		if r.URL.Path != "/rest/v1/todos" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		if got := r.URL.Query().Get("user_id"); got != "eq.u1" {
			t.Errorf("unexpected filter %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"title": "milk"}})
	})

	var out []struct {
		Title string `json:"title"`
	}

	err := client.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/rest/v1/todos",
		Query:  map[string][]string{"user_id": {"eq.u1"}},
	}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out) != 1 || out[0].Title != "milk" {
		t.Fatalf("unexpected body: %#v", out)
	}
}

func TestClientDoUsesUserToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer user-jwt" {
			t.Errorf("expected user bearer, got %q", got)
		}

		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Do(context.Background(), &Request{
		Method: http.MethodDelete,
		Path:   "rest/v1/todos",
		Token:  &oauth2.Token{AccessToken: "user-jwt", TokenType: "bearer"},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientDoDecodesErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
		wantIs      error
	}{
		{
			name:        "auth api msg",
			status:      http.StatusBadRequest,
			body:        `{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}`,
			wantMessage: "Invalid login credentials",
			wantCode:    "invalid_credentials",
		},
		{
			name:        "legacy oauth shape",
			status:      http.StatusBadRequest,
			body:        `{"error":"invalid_grant","error_description":"Email not confirmed"}`,
			wantMessage: "Email not confirmed",
			wantCode:    "invalid_grant",
		},
		{
			name:        "data api shape",
			status:      http.StatusForbidden,
			body:        `{"code":"42501","details":null,"hint":null,"message":"new row violates row-level security policy"}`,
			wantMessage: "new row violates row-level security policy",
			wantCode:    "42501",
			wantIs:      ErrUnauthorized,
		},
		{
			name:        "plain text body",
			status:      http.StatusBadGateway,
			body:        "upstream down",
			wantMessage: "upstream down",
			wantIs:      ErrUnavailable,
		},
		{
			name:        "empty body",
			status:      http.StatusNotFound,
			body:        "",
			wantMessage: "Not Found",
			wantIs:      ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.Do(context.Background(), &Request{Path: "auth/v1/token"}, nil)
			if err == nil {
				t.Fatalf("expected error")
			}

			var backendErr *Error
			if !errors.As(err, &backendErr) {
				t.Fatalf("expected *Error, got %T", err)
			}

			if backendErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, backendErr.Status)
			}

			if got := MessageOf(err); got != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, got)
			}

			if backendErr.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, backendErr.Code)
			}

			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected errors.Is(%v)", tt.wantIs)
			}
		})
	}
}

func TestClientDoTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClientWithHTTPClient(&Config{URL: url, APIKey: "k", Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	err = client.Ping(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	if got := MessageOf(err); got != ErrUnavailable.Error() {
		t.Fatalf("expected transport details to be hidden, got %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{name: "valid", cfg: &Config{URL: "https://x.supabase.co", APIKey: "k", Timeout: time.Second}},
		{name: "nil", cfg: nil, wantErr: ErrURLInvalid},
		{name: "empty url", cfg: &Config{APIKey: "k", Timeout: time.Second}, wantErr: ErrURLInvalid},
		{name: "bad scheme", cfg: &Config{URL: "ftp://x", APIKey: "k", Timeout: time.Second}, wantErr: ErrURLInvalid},
		{name: "missing key", cfg: &Config{URL: "https://x", Timeout: time.Second}, wantErr: ErrAPIKeyMissing},
		{name: "zero timeout", cfg: &Config{URL: "https://x", APIKey: "k"}, wantErr: ErrTimeoutInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
