package local

import (
	"net/http"

	"github.com/KasumiMercury/todo-web/internal/backend"
)

// Responses mirror the messages of the hosted auth API so the auth page
// behaves the same against either provider.
var (
	errInvalidCredentials = &backend.Error{
		Status:  http.StatusBadRequest,
		Code:    "invalid_credentials",
		Message: "Invalid login credentials",
	}
	errUserExists = &backend.Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    "user_already_exists",
		Message: "User already registered",
	}
	errWeakPassword = &backend.Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    "weak_password",
		Message: "Password should be at least 6 characters.",
	}
	errEmailMissing = &backend.Error{
		Status:  http.StatusBadRequest,
		Code:    "validation_failed",
		Message: "Anonymous sign-ins are disabled",
	}
	errInvalidToken = &backend.Error{
		Status:  http.StatusUnauthorized,
		Code:    "bad_jwt",
		Message: "invalid JWT: unable to parse or verify signature",
	}
	errInvalidRefreshToken = &backend.Error{
		Status:  http.StatusBadRequest,
		Code:    "refresh_token_not_found",
		Message: "Invalid Refresh Token: Refresh Token Not Found",
	}
)
