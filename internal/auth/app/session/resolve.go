package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainsession "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
	"github.com/KasumiMercury/todo-web/internal/auth/domain/user"
	"github.com/KasumiMercury/todo-web/internal/auth/infra/clock"
	"golang.org/x/oauth2"
)

type TokenVerifier interface {
	Verify(token string) error
	ExtractSessionID(token string) (string, error)
}

// IdentityProvider answers "who is the current user" for a provider token
// and renews expired tokens.
type IdentityProvider interface {
	CurrentUser(ctx context.Context, token *oauth2.Token) (*user.User, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

type ResolveSessionRequest struct {
	SessionToken string
}

// ResolveSessionResult is everything a request needs to act as the user.
type ResolveSessionResult struct {
	SessionID domainsession.ID
	UserID    user.ID
	Email     string
	Token     *oauth2.Token
}

type ResolveSessionUseCase interface {
	Resolve(ctx context.Context, req *ResolveSessionRequest) (*ResolveSessionResult, error)
}

type resolveSessionHandler struct {
	sessionRepo   domainsession.SessionRepository
	tokenVerifier TokenVerifier
	identity      IdentityProvider
	clock         clock.Clock
	logger        *slog.Logger
}

func NewResolveSessionHandler(
	sessionRepo domainsession.SessionRepository,
	tokenVerifier TokenVerifier,
	identity IdentityProvider,
) ResolveSessionUseCase {
	return NewResolveSessionHandlerWithClock(sessionRepo, tokenVerifier, identity, &clock.RealClock{})
}

func NewResolveSessionHandlerWithClock(
	sessionRepo domainsession.SessionRepository,
	tokenVerifier TokenVerifier,
	identity IdentityProvider,
	clk clock.Clock,
) ResolveSessionUseCase {
	return &resolveSessionHandler{
		sessionRepo:   sessionRepo,
		tokenVerifier: tokenVerifier,
		identity:      identity,
		clock:         clk,
		logger:        slog.Default().WithGroup("auth").WithGroup("session").WithGroup("resolve"),
	}
}

func (h *resolveSessionHandler) Resolve(ctx context.Context, req *ResolveSessionRequest) (*ResolveSessionResult, error) {
	if req == nil {
		return nil, ErrRequestNil
	}

	if req.SessionToken == "" {
		return nil, ErrSessionTokenRequired
	}

	if err := h.tokenVerifier.Verify(req.SessionToken); err != nil {
		h.logger.InfoContext(ctx, "session token verification failed", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %v", ErrSessionTokenInvalid, err)
	}

	rawSessionID, err := h.tokenVerifier.ExtractSessionID(req.SessionToken)
	if err != nil {
		h.logger.InfoContext(ctx, "session id extraction failed", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %v", ErrSessionTokenInvalid, err)
	}

	sessionID, err := domainsession.ParseID(rawSessionID)
	if err != nil {
		h.logger.InfoContext(ctx, "session id in token is invalid", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %v", ErrSessionTokenInvalid, err)
	}

	session, err := h.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		h.logger.InfoContext(ctx, "session not found for validated token", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}

	if session.IsExpired(h.clock.Now()) {
		h.logger.InfoContext(ctx, "session has expired", slog.String("session_id", sessionID.String()))

		return nil, ErrSessionExpired
	}

	token, err := h.currentToken(ctx, session)
	if err != nil {
		return nil, err
	}

	current, err := h.identity.CurrentUser(ctx, token)
	if err != nil {
		h.logger.InfoContext(ctx, "auth provider rejected session token", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if current.ID() != session.UserID() {
		h.logger.WarnContext(ctx, "auth provider returned a different user for session",
			slog.String("session_id", sessionID.String()),
		)

		return nil, ErrUnauthorized
	}

	return &ResolveSessionResult{
		SessionID: session.ID(),
		UserID:    session.UserID(),
		Email:     session.Email(),
		Token:     token,
	}, nil
}

// currentToken returns the stored provider token, renewing it first when it
// has expired. A renewed token is written back to the session store.
func (h *resolveSessionHandler) currentToken(ctx context.Context, session *domainsession.Session) (*oauth2.Token, error) {
	stored := session.Token()

	source := oauth2.ReuseTokenSource(stored, &refreshTokenSource{
		ctx:          ctx,
		identity:     h.identity,
		refreshToken: stored.RefreshToken,
	})

	token, err := source.Token()
	if err != nil {
		h.logger.InfoContext(ctx, "provider token refresh failed", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if token.AccessToken == stored.AccessToken {
		return token, nil
	}

	refreshed, err := session.WithToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if err := h.sessionRepo.SaveSession(ctx, refreshed); err != nil {
		// The new token is still usable for this request.
		h.logger.WarnContext(ctx, "failed to persist refreshed token", slog.String("error", err.Error()))
	} else {
		h.logger.DebugContext(ctx, "provider token refreshed", slog.String("session_id", session.ID().String()))
	}

	return token, nil
}

type refreshTokenSource struct {
	ctx          context.Context
	identity     IdentityProvider
	refreshToken string
}

func (s *refreshTokenSource) Token() (*oauth2.Token, error) {
	if s.refreshToken == "" {
		return nil, errors.New("token expired and no refresh token is available")
	}

	token, err := s.identity.Refresh(s.ctx, s.refreshToken)
	if err != nil {
		return nil, err
	}

	if token.RefreshToken == "" {
		token.RefreshToken = s.refreshToken
	}

	return token, nil
}
