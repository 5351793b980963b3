package gotrue

import "errors"

var (
	ErrTokenRequired        = errors.New("access token is required")
	ErrRefreshTokenRequired = errors.New("refresh token is required")
	ErrUserMissing          = errors.New("auth response carried no user")
)
