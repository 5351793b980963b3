package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/todo-web/internal/auth/domain/user"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

func testUser(t *testing.T) *user.User {
	t.Helper()

	u, err := user.NewUser("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}

	return u
}

func testToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "bearer"}
}

func TestParseIDSuccess(t *testing.T) {
	t.Parallel()

	validID, err := NewID()
	if err != nil {
		t.Fatalf("NewID returned error: %v", err)
	}

	id, err := ParseID(validID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != validID {
		t.Fatalf("ParseID = %s, want %s", id, validID)
	}
}

func TestParseIDErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantErrIs error
	}{
		{
			name:      "empty id",
			input:     "",
			wantErrIs: ErrSessionIDEmpty,
		},
		{
			name:      "invalid uuid",
			input:     "not-a-uuid",
			wantErrIs: ErrSessionIDInvalidFormat,
		},
		{
			name:      "uuid v4",
			input:     uuid.NewString(),
			wantErrIs: ErrSessionIDInvalidV7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := ParseID(tt.input)
			if err == nil {
				t.Fatalf("expected error but got nil (id: %v)", id)
			}

			if !errors.Is(err, tt.wantErrIs) {
				t.Fatalf("expected error %v, got %v", tt.wantErrIs, err)
			}
		})
	}
}

func TestNewSessionSuccess(t *testing.T) {
	t.Parallel()

	baseTime := time.Date(2025, time.January, 2, 15, 4, 5, 0, time.UTC)
	expires := baseTime.Add(2 * time.Hour)

	session, err := NewSession(testUser(t), testToken(), baseTime, expires)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := session.ID().Validate(); err != nil {
		t.Fatalf("session ID should be valid, got error: %v", err)
	}

	if session.UserID() != "user-123" {
		t.Fatalf("UserID() = %s, want user-123", session.UserID())
	}

	if session.Email() != "user@example.com" {
		t.Fatalf("Email() = %s, want user@example.com", session.Email())
	}

	if !session.CreatedAt().Equal(baseTime) || !session.ExpiresAt().Equal(expires) {
		t.Fatalf("unexpected times: %s - %s", session.CreatedAt(), session.ExpiresAt())
	}

	if session.IsExpired(baseTime.Add(time.Hour)) {
		t.Fatalf("session should not be expired before expiresAt")
	}

	if !session.IsExpired(expires) {
		t.Fatalf("session should be expired at expiresAt")
	}
}

func TestNewSessionCreatedAtDefaultsToNow(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	session, err := NewSession(testUser(t), testToken(), time.Time{}, before.Add(time.Hour))
	after := time.Now().UTC()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.CreatedAt().Before(before) || session.CreatedAt().After(after) {
		t.Fatalf("CreatedAt should be within call window [%s, %s], got %s", before, after, session.CreatedAt())
	}
}

func TestNewSessionErrors(t *testing.T) {
	t.Parallel()

	baseTime := time.Date(2025, time.January, 2, 15, 4, 5, 0, time.UTC)
	expires := baseTime.Add(2 * time.Hour)

	validID, err := NewID()
	if err != nil {
		t.Fatalf("NewID returned error: %v", err)
	}

	tests := []struct {
		name      string
		build     func() (*Session, error)
		wantErrIs error
	}{
		{
			name: "nil user",
			build: func() (*Session, error) {
				return NewSession(nil, testToken(), baseTime, expires)
			},
			wantErrIs: ErrUserIDEmpty,
		},
		{
			name: "missing user id",
			build: func() (*Session, error) {
				return NewSessionWithID(validID, "", "", testToken(), baseTime, expires)
			},
			wantErrIs: ErrUserIDEmpty,
		},
		{
			name: "missing token",
			build: func() (*Session, error) {
				return NewSessionWithID(validID, "user-123", "", nil, baseTime, expires)
			},
			wantErrIs: ErrTokenMissing,
		},
		{
			name: "empty access token",
			build: func() (*Session, error) {
				return NewSessionWithID(validID, "user-123", "", &oauth2.Token{}, baseTime, expires)
			},
			wantErrIs: ErrTokenMissing,
		},
		{
			name: "missing expiresAt",
			build: func() (*Session, error) {
				return NewSessionWithID(validID, "user-123", "", testToken(), baseTime, time.Time{})
			},
			wantErrIs: ErrExpiresAtMissing,
		},
		{
			name: "expires before created",
			build: func() (*Session, error) {
				return NewSessionWithID(validID, "user-123", "", testToken(), baseTime, baseTime.Add(-time.Minute))
			},
			wantErrIs: ErrExpiresBeforeStart,
		},
		{
			name: "zero session id",
			build: func() (*Session, error) {
				return NewSessionWithID(ID{}, "user-123", "", testToken(), baseTime, expires)
			},
			wantErrIs: ErrSessionIDEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			session, err := tt.build()
			if !errors.Is(err, tt.wantErrIs) {
				t.Fatalf("expected error %v, got %v", tt.wantErrIs, err)
			}

			if session != nil {
				t.Fatalf("expected session to be nil when error occurs")
			}
		})
	}
}

func TestSessionWithToken(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	session, err := NewSession(testUser(t), testToken(), now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refreshed, err := session.WithToken(&oauth2.Token{AccessToken: "next", RefreshToken: "refresh-2"})
	if err != nil {
		t.Fatalf("WithToken returned error: %v", err)
	}

	if refreshed.ID() != session.ID() {
		t.Fatalf("WithToken changed the session id")
	}

	if refreshed.Token().AccessToken != "next" {
		t.Fatalf("expected refreshed access token, got %q", refreshed.Token().AccessToken)
	}

	if session.Token().AccessToken != "access" {
		t.Fatalf("original session was modified")
	}

	if _, err := session.WithToken(nil); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}
