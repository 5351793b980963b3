package credential_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/KasumiMercury/todo-web/internal/auth/app/credential"
	sessionCfg "github.com/KasumiMercury/todo-web/internal/auth/config/session"
	domainsession "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
	"github.com/KasumiMercury/todo-web/internal/auth/domain/user"
	"github.com/KasumiMercury/todo-web/internal/auth/infra/clock"
	"github.com/KasumiMercury/todo-web/internal/auth/infra/jwt"
	"github.com/KasumiMercury/todo-web/internal/auth/infra/repository"
	"github.com/KasumiMercury/todo-web/internal/backend"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"
)

func testGrant(t *testing.T) *user.Grant {
	t.Helper()

	u, err := user.NewUser("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return &user.Grant{
		User:  u,
		Token: &oauth2.Token{AccessToken: "provider-jwt", RefreshToken: "refresh"},
	}
}

func testSessionConfig() *sessionCfg.Config {
	return &sessionCfg.Config{Duration: time.Hour, Secret: "test-secret", CookieName: "todo_session"}
}

func TestSignInSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)

	now := time.Now().UTC()
	cfg := testSessionConfig()
	repo := repository.NewInMemorySessionRepository()

	provider := credential.NewMockProvider(ctrl)
	provider.EXPECT().
		SignInWithPassword(gomock.Any(), " a@example.com", "pass word").
		Return(testGrant(t), nil)

	handler := credential.NewCredentialHandlerWithClock(provider, repo, jwt.NewSessionJWTGenerator(cfg), cfg, clock.NewFixedClock(now))

	result, err := handler.SignIn(context.Background(), &credential.Request{Email: " a@example.com", Password: "pass word"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.HasSession() {
		t.Fatalf("expected a session token")
	}

	validator := jwt.NewSessionJWTValidator(cfg)
	if err := validator.Verify(result.SessionToken); err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}

	stored, err := repo.GetSession(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("session was not stored: %v", err)
	}

	if stored.UserID() != "user-1" || stored.Token().AccessToken != "provider-jwt" {
		t.Fatalf("unexpected stored session: %s %+v", stored.UserID(), stored.Token())
	}

	if !stored.ExpiresAt().Equal(now.Add(cfg.Duration)) {
		t.Fatalf("ExpiresAt = %s, want %s", stored.ExpiresAt(), now.Add(cfg.Duration))
	}
}

func TestSignInRejectedKeepsProviderMessage(t *testing.T) {
	ctrl := gomock.NewController(t)

	providerErr := &backend.Error{Status: http.StatusBadRequest, Message: "Invalid login credentials"}

	provider := credential.NewMockProvider(ctrl)
	provider.EXPECT().SignInWithPassword(gomock.Any(), "a@example.com", "wrong").Return(nil, providerErr)

	generator := credential.NewMockSessionTokenGenerator(ctrl)
	generator.EXPECT().Generate(gomock.Any()).Times(0)

	handler := credential.NewCredentialHandler(provider, repository.NewInMemorySessionRepository(), generator, testSessionConfig())

	_, err := handler.SignIn(context.Background(), &credential.Request{Email: "a@example.com", Password: "wrong"})
	if !errors.Is(err, credential.ErrCredentialRejected) {
		t.Fatalf("expected ErrCredentialRejected, got %v", err)
	}

	if got := backend.MessageOf(err); got != "Invalid login credentials" {
		t.Fatalf("expected provider message, got %q", got)
	}
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name        string
		grant       *user.Grant
		providerErr error
		wantSession bool
		wantErr     error
	}{
		{
			name:        "session opened",
			grant:       testGrant(t),
			wantSession: true,
		},
		{
			name:  "confirmation pending",
			grant: &user.Grant{User: testGrant(t).User},
		},
		{
			name:        "rejected",
			providerErr: &backend.Error{Status: http.StatusUnprocessableEntity, Message: "User already registered"},
			wantErr:     credential.ErrCredentialRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cfg := testSessionConfig()

			provider := credential.NewMockProvider(ctrl)
			provider.EXPECT().SignUp(gomock.Any(), "a@example.com", "secret1").Return(tt.grant, tt.providerErr)

			handler := credential.NewCredentialHandler(provider, repository.NewInMemorySessionRepository(), jwt.NewSessionJWTGenerator(cfg), cfg)

			result, err := handler.SignUp(context.Background(), &credential.Request{Email: "a@example.com", Password: "secret1"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.HasSession() != tt.wantSession {
				t.Fatalf("HasSession() = %v, want %v", result.HasSession(), tt.wantSession)
			}

			if result.UserID != "user-1" {
				t.Fatalf("UserID = %q, want user-1", result.UserID)
			}
		})
	}
}

type failingSessionRepository struct {
	domainsession.SessionRepository
}

func (failingSessionRepository) SaveSession(context.Context, *domainsession.Session) error {
	return errors.New("redis down")
}

func TestSignInSessionFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(ctrl *gomock.Controller) (domainsession.SessionRepository, credential.SessionTokenGenerator)
	}{
		{
			name: "persist fails",
			setup: func(ctrl *gomock.Controller) (domainsession.SessionRepository, credential.SessionTokenGenerator) {
				generator := credential.NewMockSessionTokenGenerator(ctrl)
				generator.EXPECT().Generate(gomock.Any()).Times(0)

				return failingSessionRepository{}, generator
			},
		},
		{
			name: "token generation fails",
			setup: func(ctrl *gomock.Controller) (domainsession.SessionRepository, credential.SessionTokenGenerator) {
				generator := credential.NewMockSessionTokenGenerator(ctrl)
				generator.EXPECT().Generate(gomock.Any()).Return("", errors.New("signer broken"))

				return repository.NewInMemorySessionRepository(), generator
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			provider := credential.NewMockProvider(ctrl)
			provider.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any(), gomock.Any()).Return(testGrant(t), nil)

			repo, generator := tt.setup(ctrl)
			handler := credential.NewCredentialHandler(provider, repo, generator, testSessionConfig())

			_, err := handler.SignIn(context.Background(), &credential.Request{Email: "a@example.com", Password: "secret1"})
			if !errors.Is(err, credential.ErrSessionCreation) {
				t.Fatalf("expected ErrSessionCreation, got %v", err)
			}
		})
	}
}

func TestNilRequest(t *testing.T) {
	ctrl := gomock.NewController(t)

	handler := credential.NewCredentialHandler(credential.NewMockProvider(ctrl), repository.NewInMemorySessionRepository(), credential.NewMockSessionTokenGenerator(ctrl), testSessionConfig())

	if _, err := handler.SignIn(context.Background(), nil); !errors.Is(err, credential.ErrRequestNil) {
		t.Fatalf("expected ErrRequestNil, got %v", err)
	}

	if _, err := handler.SignUp(context.Background(), nil); !errors.Is(err, credential.ErrRequestNil) {
		t.Fatalf("expected ErrRequestNil, got %v", err)
	}
}
