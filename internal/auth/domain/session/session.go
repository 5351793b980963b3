package domain

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/todo-web/internal/auth/domain/user"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type ID uuid.UUID

func NewID() (ID, error) {
	v7, err := uuid.NewV7()
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrSessionIDGeneration, err)
	}

	return ID(v7), nil
}

func ParseID(id string) (ID, error) {
	if id == "" {
		return ID{}, ErrSessionIDEmpty
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrSessionIDInvalidFormat, err)
	}

	candidate := ID(parsed)

	return candidate, candidate.validate()
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) Validate() error {
	return id.validate()
}

func (id ID) validate() error {
	if uuid.UUID(id) == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if uuid.UUID(id).Version() != 7 {
		return ErrSessionIDInvalidV7
	}

	return nil
}

// Session is the local record behind the session cookie. It keeps the
// credentials the auth provider issued so later requests can act as the user.
type Session struct {
	id        ID
	userID    user.ID
	email     string
	token     *oauth2.Token
	createdAt time.Time
	expiresAt time.Time
}

func NewSession(u *user.User, token *oauth2.Token, createdAt, expiresAt time.Time) (*Session, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}

	if u == nil {
		return nil, ErrUserIDEmpty
	}

	return newSession(id, u.ID(), u.Email(), token, createdAt, expiresAt)
}

func NewSessionWithID(id ID, userID user.ID, email string, token *oauth2.Token, createdAt, expiresAt time.Time) (*Session, error) {
	return newSession(id, userID, email, token, createdAt, expiresAt)
}

func newSession(id ID, userID user.ID, email string, token *oauth2.Token, createdAt, expiresAt time.Time) (*Session, error) {
	if err := id.validate(); err != nil {
		return nil, err
	}

	if userID == "" {
		return nil, ErrUserIDEmpty
	}

	if token == nil || token.AccessToken == "" {
		return nil, ErrTokenMissing
	}

	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if expiresAt.IsZero() {
		return nil, ErrExpiresAtMissing
	}

	if !expiresAt.After(createdAt) {
		return nil, ErrExpiresBeforeStart
	}

	return &Session{
		id:        id,
		userID:    userID,
		email:     email,
		token:     token,
		createdAt: createdAt,
		expiresAt: expiresAt,
	}, nil
}

func (s *Session) ID() ID {
	return s.id
}

func (s *Session) UserID() user.ID {
	return s.userID
}

func (s *Session) Email() string {
	return s.email
}

// Token returns a copy of the provider credentials.
func (s *Session) Token() *oauth2.Token {
	copied := *s.token

	return &copied
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

// WithToken returns a copy of the session carrying refreshed credentials.
func (s *Session) WithToken(token *oauth2.Token) (*Session, error) {
	return newSession(s.id, s.userID, s.email, token, s.createdAt, s.expiresAt)
}
