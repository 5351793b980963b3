package user

import (
	"strings"

	"golang.org/x/oauth2"
)

type ID string

func NewIDFromString(s string) (ID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrIDEmpty
	}

	return ID(trimmed), nil
}

func (id ID) String() string {
	return string(id)
}

// Principal is the caller on whose behalf a task operation runs.
type Principal struct {
	userID ID
	token  *oauth2.Token
}

func NewPrincipal(userID ID, token *oauth2.Token) (Principal, error) {
	if userID == "" {
		return Principal{}, ErrIDEmpty
	}

	if token == nil || token.AccessToken == "" {
		return Principal{}, ErrTokenMissing
	}

	return Principal{userID: userID, token: token}, nil
}

func (p Principal) UserID() ID {
	return p.userID
}

// Token returns a copy of the access token.
func (p Principal) Token() *oauth2.Token {
	if p.token == nil {
		return nil
	}

	cp := *p.token

	return &cp
}

func (p Principal) IsZero() bool {
	return p.userID == "" || p.token == nil
}
