package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KasumiMercury/todo-web/internal/backend"
	"golang.org/x/oauth2"
)

type recordedRequest struct {
	method string
	path   string
	grant  string
	auth   string
	body   map[string]string
}

func newTestClient(t *testing.T, status int, response string) (*Client, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.method = r.Method
		recorded.path = r.URL.Path
		recorded.grant = r.URL.Query().Get("grant_type")
		recorded.auth = r.Header.Get("Authorization")

		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&recorded.body); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	backendClient, err := backend.NewClientWithHTTPClient(&backend.Config{
		URL:     server.URL,
		APIKey:  "anon",
		Timeout: time.Second,
	}, server.Client())
	if err != nil {
		t.Fatalf("failed to create backend client: %v", err)
	}

	client := NewClient(backendClient)
	client.now = func() time.Time { return time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC) }

	return client, recorded
}

const sessionResponse = `{
	"access_token": "user-jwt",
	"token_type": "bearer",
	"expires_in": 3600,
	"refresh_token": "refresh-1",
	"user": {"id": "8d1c2f0e-4b9a-4c3e-a1d2-7e6f5a4b3c2d", "email": "a@example.com"}
}`

func TestSignInWithPassword(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, sessionResponse)

	grant, err := client.SignInWithPassword(context.Background(), "a@example.com", " secret ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recorded.method != http.MethodPost || recorded.path != "/auth/v1/token" || recorded.grant != "password" {
		t.Fatalf("unexpected request: %+v", recorded)
	}

	if recorded.body["email"] != "a@example.com" || recorded.body["password"] != " secret " {
		t.Fatalf("credentials should be sent verbatim, got %v", recorded.body)
	}

	if grant.User.ID() != "8d1c2f0e-4b9a-4c3e-a1d2-7e6f5a4b3c2d" || grant.User.Email() != "a@example.com" {
		t.Fatalf("unexpected user: %+v", grant.User)
	}

	if !grant.HasSession() || grant.Token.RefreshToken != "refresh-1" {
		t.Fatalf("unexpected token: %+v", grant.Token)
	}

	wantExpiry := time.Date(2025, time.May, 1, 11, 0, 0, 0, time.UTC)
	if !grant.Token.Expiry.Equal(wantExpiry) {
		t.Fatalf("Expiry = %s, want %s", grant.Token.Expiry, wantExpiry)
	}
}

func TestSignInWithPasswordRejected(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadRequest,
		`{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}`)

	_, err := client.SignInWithPassword(context.Background(), "a@example.com", "wrong")
	if err == nil {
		t.Fatalf("expected error")
	}

	if got := backend.MessageOf(err); got != "Invalid login credentials" {
		t.Fatalf("expected provider message, got %q", got)
	}
}

func TestSignUp(t *testing.T) {
	t.Run("auto confirmed", func(t *testing.T) {
		client, recorded := newTestClient(t, http.StatusOK, sessionResponse)

		grant, err := client.SignUp(context.Background(), "a@example.com", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if recorded.path != "/auth/v1/signup" {
			t.Fatalf("unexpected path %q", recorded.path)
		}

		if !grant.HasSession() {
			t.Fatalf("expected a session")
		}
	})

	t.Run("confirmation pending", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK,
			`{"id":"8d1c2f0e-4b9a-4c3e-a1d2-7e6f5a4b3c2d","email":"a@example.com","confirmation_sent_at":"2025-05-01T10:00:00Z"}`)

		grant, err := client.SignUp(context.Background(), "a@example.com", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if grant.HasSession() {
			t.Fatalf("expected no session while confirmation is pending")
		}

		if grant.User.Email() != "a@example.com" {
			t.Fatalf("unexpected user: %+v", grant.User)
		}
	})

	t.Run("already registered", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusUnprocessableEntity,
			`{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`)

		_, err := client.SignUp(context.Background(), "a@example.com", "secret")
		if got := backend.MessageOf(err); got != "User already registered" {
			t.Fatalf("expected provider message, got %q", got)
		}
	})
}

func TestRefresh(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK,
		`{"access_token":"next-jwt","token_type":"bearer","expires_at":1746100800,"refresh_token":"refresh-2","user":{"id":"u"}}`)

	token, err := client.Refresh(context.Background(), "refresh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recorded.grant != "refresh_token" || recorded.body["refresh_token"] != "refresh-1" {
		t.Fatalf("unexpected request: %+v", recorded)
	}

	if token.AccessToken != "next-jwt" || token.RefreshToken != "refresh-2" {
		t.Fatalf("unexpected token: %+v", token)
	}

	if !token.Expiry.Equal(time.Unix(1746100800, 0)) {
		t.Fatalf("unexpected expiry %s", token.Expiry)
	}

	if _, err := client.Refresh(context.Background(), ""); !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
}

func TestCurrentUserAndSignOutUseUserToken(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `{"id":"u-1","email":"a@example.com"}`)
	token := &oauth2.Token{AccessToken: "user-jwt", TokenType: "bearer"}

	u, err := client.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recorded.path != "/auth/v1/user" || recorded.auth != "Bearer user-jwt" {
		t.Fatalf("unexpected request: %+v", recorded)
	}

	if u.ID() != "u-1" {
		t.Fatalf("unexpected user id %q", u.ID())
	}

	if err := client.SignOut(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recorded.path != "/auth/v1/logout" || recorded.auth != "Bearer user-jwt" {
		t.Fatalf("unexpected request: %+v", recorded)
	}

	if _, err := client.CurrentUser(context.Background(), nil); !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}

	if err := client.SignOut(context.Background(), &oauth2.Token{}); !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
}

func TestCurrentUserRejected(t *testing.T) {
	client, _ := newTestClient(t, http.StatusUnauthorized, `{"code":401,"msg":"invalid JWT"}`)

	_, err := client.CurrentUser(context.Background(), &oauth2.Token{AccessToken: "stale"})
	if !errors.Is(err, backend.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
