package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainsession "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
	"github.com/KasumiMercury/todo-web/internal/auth/domain/user"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

type sessionRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	TokenExpiry  time.Time `json:"token_expiry,omitzero"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func newSessionRecord(session *domainsession.Session) sessionRecord {
	token := session.Token()

	return sessionRecord{
		ID:           session.ID().String(),
		UserID:       session.UserID().String(),
		Email:        session.Email(),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		TokenExpiry:  token.Expiry,
		CreatedAt:    session.CreatedAt(),
		ExpiresAt:    session.ExpiresAt(),
	}
}

func (r sessionRecord) toDomain() (*domainsession.Session, error) {
	id, err := domainsession.ParseID(r.ID)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		Expiry:       r.TokenExpiry,
	}

	return domainsession.NewSessionWithID(id, user.ID(r.UserID), r.Email, token, r.CreatedAt, r.ExpiresAt)
}

type sessionRepository struct {
	client *redis.Client
}

// NewSessionRepository stores sessions in redis with a TTL matching their
// expiry, so expired sessions disappear without a sweeper.
func NewSessionRepository(client *redis.Client) domainsession.SessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) SaveSession(ctx context.Context, session *domainsession.Session) error {
	if session == nil {
		return ErrSessionRequired
	}

	ttl := time.Until(session.ExpiresAt())
	if ttl <= 0 {
		return ErrSessionAlreadyExpired
	}

	payload, err := json.Marshal(newSessionRecord(session))
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.key(session.ID()), payload, ttl).Err()
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID domainsession.ID) (*domainsession.Session, error) {
	raw, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domainsession.ErrSessionNotFound
	}

	if err != nil {
		return nil, err
	}

	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}

	return record.toDomain()
}

func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID domainsession.ID) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

func (r *sessionRepository) key(id domainsession.ID) string {
	return fmt.Sprintf("auth:session:%s", id.String())
}
