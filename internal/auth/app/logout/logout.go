package logout

import (
	"context"
	"fmt"
	"log/slog"

	domainsession "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
	"golang.org/x/oauth2"
)

type TokenVerifier interface {
	Verify(token string) error
	ExtractSessionID(token string) (string, error)
}

// SignOutProvider ends the session on the auth provider's side.
type SignOutProvider interface {
	SignOut(ctx context.Context, token *oauth2.Token) error
}

type LogoutRequest struct {
	SessionToken string
}

// LogoutResponse reports which local session was closed so callers can drop
// state keyed by it. SessionID is zero when the cookie did not name one.
type LogoutResponse struct {
	Success   bool
	SessionID domainsession.ID
}

type LogoutUseCase interface {
	Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error)
}

type logoutHandler struct {
	sessionRepo   domainsession.SessionRepository
	tokenVerifier TokenVerifier
	provider      SignOutProvider
	logger        *slog.Logger
}

func NewLogoutHandler(
	sessionRepo domainsession.SessionRepository,
	tokenVerifier TokenVerifier,
	provider SignOutProvider,
) *logoutHandler {
	return &logoutHandler{
		sessionRepo:   sessionRepo,
		tokenVerifier: tokenVerifier,
		provider:      provider,
		logger:        slog.Default().WithGroup("auth").WithGroup("logout"),
	}
}

// Logout signs out at the provider (best effort) and deletes the local
// session. An expired cookie still identifies the session to delete.
func (h *logoutHandler) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	if req == nil {
		return &LogoutResponse{Success: false}, ErrRequestNil
	}

	if req.SessionToken == "" {
		h.logger.DebugContext(ctx, "logout called with empty token")

		return &LogoutResponse{Success: false}, ErrSessionTokenRequired
	}

	rawSessionID, err := h.tokenVerifier.ExtractSessionID(req.SessionToken)
	if err != nil {
		h.logger.InfoContext(ctx, "session id extraction failed", slog.String("error", err.Error()))

		return &LogoutResponse{Success: false}, fmt.Errorf("%w: %v", ErrSessionTokenInvalid, err)
	}

	sessionID, err := domainsession.ParseID(rawSessionID)
	if err != nil {
		h.logger.InfoContext(ctx, "session id in token is invalid", slog.String("error", err.Error()))

		return &LogoutResponse{Success: false}, fmt.Errorf("%w: %v", ErrSessionTokenInvalid, err)
	}

	response := &LogoutResponse{Success: false, SessionID: sessionID}

	session, err := h.sessionRepo.GetSession(ctx, sessionID)
	if err == nil && h.provider != nil {
		if err := h.provider.SignOut(ctx, session.Token()); err != nil {
			h.logger.WarnContext(ctx, "provider sign out failed", slog.String("error", err.Error()))
		}
	}

	if err := h.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		h.logger.WarnContext(ctx, "failed to delete session", slog.String("error", err.Error()))

		return response, fmt.Errorf("%w: %v", ErrSessionDeleteFailed, err)
	}

	h.logger.InfoContext(ctx, "session closed", slog.String("session_id", sessionID.String()))

	response.Success = true

	return response, nil
}
