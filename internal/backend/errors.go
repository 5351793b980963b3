package backend

import (
	"errors"
	"net/http"
)

var (
	ErrURLInvalid     = errors.New("backend URL is invalid")
	ErrAPIKeyMissing  = errors.New("backend API key is required")
	ErrTimeoutInvalid = errors.New("backend timeout must be positive")
	ErrRequestNil     = errors.New("backend request is required")
	ErrUnauthorized   = errors.New("backend rejected the credentials")
	ErrNotFound       = errors.New("backend resource not found")
	ErrUnavailable    = errors.New("backend unavailable")
)

// Error is a non-2xx response from the backend. Message is the
// human-readable text the backend returned and is safe to show to users.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if text := http.StatusText(e.Status); text != "" {
		return text
	}

	return "backend request failed"
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnavailable:
		return e.Status >= http.StatusInternalServerError
	default:
		return false
	}
}

// MessageOf returns the backend-supplied message carried by err. Transport
// failures collapse to ErrUnavailable's text so dial details stay in logs.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}

	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Error()
	}

	if errors.Is(err, ErrUnavailable) {
		return ErrUnavailable.Error()
	}

	return err.Error()
}
