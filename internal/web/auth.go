package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/KasumiMercury/todo-web/internal/auth/app/credential"
	"github.com/KasumiMercury/todo-web/internal/auth/app/logout"
	"github.com/KasumiMercury/todo-web/internal/backend"
)

const (
	sessionStartFailedMessage = "Could not start a session. Please try again."
	authFailedMessage         = "Authentication failed. Please try again."
)

// home sends the visitor to the task list when the cookie names a live
// session and to the auth page otherwise.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	if _, _, err := h.session(r.Context(), r); err != nil {
		h.logger.DebugContext(r.Context(), "no session on home", slog.String("error", err.Error()))
		redirect(w, r, "/auth")

		return
	}

	redirect(w, r, "/todos")
}

func (h *Handler) authForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, authPage, authPageData{})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	h.submitCredentials(w, r, "signin", h.auth.SignIn.SignIn)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	h.submitCredentials(w, r, "signup", h.auth.SignUp.SignUp)
}

type credentialFunc func(ctx context.Context, req *credential.Request) (*credential.Result, error)

// submitCredentials passes the form values through untouched. On failure the
// provider's message is shown as is and the email is kept in the form.
func (h *Handler) submitCredentials(w http.ResponseWriter, r *http.Request, operation string, submit credentialFunc) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	req := &credential.Request{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}

	result, err := submit(r.Context(), req)
	if err != nil {
		h.logger.InfoContext(r.Context(), "credential submission failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)

		h.render(w, r, http.StatusOK, authPage, authPageData{
			Email: req.Email,
			Error: authErrorMessage(err),
		})

		return
	}

	if result.HasSession() {
		h.cookies.set(w, result.SessionToken)
	}

	redirect(w, r, "/todos")
}

// authErrorMessage shows collaborator messages verbatim. Anything else is
// an internal failure and gets a fixed message.
func authErrorMessage(err error) string {
	if errors.Is(err, credential.ErrSessionCreation) {
		return sessionStartFailedMessage
	}

	var backendErr *backend.Error
	if errors.As(err, &backendErr) || errors.Is(err, backend.ErrUnavailable) {
		return backend.MessageOf(err)
	}

	return authFailedMessage
}

// logout always ends on the auth page, whatever happened to the sessions.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token := h.cookies.read(r)

	if token != "" {
		resp, err := h.auth.Logout.Logout(r.Context(), &logout.LogoutRequest{SessionToken: token})
		if err != nil {
			h.logger.WarnContext(r.Context(), "logout incomplete", slog.String("error", err.Error()))
		}

		if resp != nil && resp.SessionID.Validate() == nil {
			h.tasks.Views.Remove(resp.SessionID.String())
		}
	}

	h.cookies.clear(w)
	redirect(w, r, "/auth")
}
