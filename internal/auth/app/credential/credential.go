package credential

import (
	"context"
	"fmt"
	"log/slog"

	sessionCfg "github.com/KasumiMercury/todo-web/internal/auth/config/session"
	domainsession "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
	"github.com/KasumiMercury/todo-web/internal/auth/domain/user"
	"github.com/KasumiMercury/todo-web/internal/auth/infra/clock"
)

// Provider verifies credentials and creates accounts.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*user.Grant, error)
	SignUp(ctx context.Context, email, password string) (*user.Grant, error)
}

type SessionTokenGenerator interface {
	Generate(session *domainsession.Session) (string, error)
}

// Request carries the submitted form values untouched.
type Request struct {
	Email    string
	Password string
}

// Result is empty (no SessionToken) when the provider accepted a sign-up
// but did not open a session.
type Result struct {
	SessionToken string
	SessionID    domainsession.ID
	UserID       user.ID
}

func (r *Result) HasSession() bool {
	return r != nil && r.SessionToken != ""
}

type SignInUseCase interface {
	SignIn(ctx context.Context, req *Request) (*Result, error)
}

type SignUpUseCase interface {
	SignUp(ctx context.Context, req *Request) (*Result, error)
}

type credentialHandler struct {
	provider       Provider
	sessionRepo    domainsession.SessionRepository
	tokenGenerator SessionTokenGenerator
	sessionCfg     *sessionCfg.Config
	clock          clock.Clock
	logger         *slog.Logger
}

func NewCredentialHandler(
	provider Provider,
	sessionRepo domainsession.SessionRepository,
	tokenGenerator SessionTokenGenerator,
	cfg *sessionCfg.Config,
) *credentialHandler {
	return NewCredentialHandlerWithClock(provider, sessionRepo, tokenGenerator, cfg, &clock.RealClock{})
}

func NewCredentialHandlerWithClock(
	provider Provider,
	sessionRepo domainsession.SessionRepository,
	tokenGenerator SessionTokenGenerator,
	cfg *sessionCfg.Config,
	clk clock.Clock,
) *credentialHandler {
	return &credentialHandler{
		provider:       provider,
		sessionRepo:    sessionRepo,
		tokenGenerator: tokenGenerator,
		sessionCfg:     cfg,
		clock:          clk,
		logger:         slog.Default().WithGroup("auth").WithGroup("credential"),
	}
}

func (h *credentialHandler) SignIn(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, ErrRequestNil
	}

	grant, err := h.provider.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.InfoContext(ctx, "sign in rejected", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %w", ErrCredentialRejected, err)
	}

	return h.openSession(ctx, "sign_in", grant)
}

func (h *credentialHandler) SignUp(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, ErrRequestNil
	}

	grant, err := h.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.InfoContext(ctx, "sign up rejected", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %w", ErrCredentialRejected, err)
	}

	if !grant.HasSession() {
		h.logger.InfoContext(ctx, "sign up accepted without session")

		result := &Result{}
		if grant != nil && grant.User != nil {
			result.UserID = grant.User.ID()
		}

		return result, nil
	}

	return h.openSession(ctx, "sign_up", grant)
}

func (h *credentialHandler) openSession(ctx context.Context, operation string, grant *user.Grant) (*Result, error) {
	if !grant.HasSession() || grant.User == nil {
		h.logger.ErrorContext(ctx, "provider returned incomplete grant", slog.String("operation", operation))

		return nil, fmt.Errorf("%w: provider returned no session", ErrSessionCreation)
	}

	now := h.clock.Now()

	session, err := domainsession.NewSession(grant.User, grant.Token, now, now.Add(h.sessionCfg.Duration))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create session", slog.String("error", err.Error()), slog.String("operation", operation))

		return nil, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	if err := h.sessionRepo.SaveSession(ctx, session); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist session", slog.String("error", err.Error()), slog.String("operation", operation))

		return nil, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	token, err := h.tokenGenerator.Generate(session)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate session token", slog.String("error", err.Error()), slog.String("operation", operation))

		return nil, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	h.logger.InfoContext(ctx, "session opened",
		slog.String("operation", operation),
		slog.String("session_id", session.ID().String()),
	)

	return &Result{
		SessionToken: token,
		SessionID:    session.ID(),
		UserID:       session.UserID(),
	}, nil
}
