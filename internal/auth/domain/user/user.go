package user

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID is the identifier the auth provider assigned to an account. It is
// opaque to this service.
type ID string

// NewID generates an ID for accounts created by an in-process provider.
func NewID() (ID, error) {
	v7, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIDGeneration, err)
	}

	return ID(v7.String()), nil
}

func NewIDFromString(idStr string) (ID, error) {
	trimmed := strings.TrimSpace(idStr)
	if trimmed == "" {
		return "", ErrIDEmpty
	}

	return ID(trimmed), nil
}

func (id ID) String() string {
	return string(id)
}

type User struct {
	id    ID
	email string
}

func NewUser(id ID, email string) (*User, error) {
	if id == "" {
		return nil, ErrIDEmpty
	}

	return &User{
		id:    id,
		email: email,
	}, nil
}

func (u *User) ID() ID {
	return u.id
}

func (u *User) Email() string {
	return u.email
}
