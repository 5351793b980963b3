// Package gotrue is the client for the managed backend's auth API.
package gotrue

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/todo-web/internal/auth/domain/user"
	"github.com/KasumiMercury/todo-web/internal/backend"
	"golang.org/x/oauth2"
)

const (
	tokenPath  = "auth/v1/token"
	signupPath = "auth/v1/signup"
	logoutPath = "auth/v1/logout"
	userPath   = "auth/v1/user"

	grantPassword = "password"
	grantRefresh  = "refresh_token"
)

// Doer is the subset of backend.Client used here.
type Doer interface {
	Do(ctx context.Context, req *backend.Request, out any) error
}

type Client struct {
	backend Doer
	now     func() time.Time
	logger  *slog.Logger
}

func NewClient(backendClient Doer) *Client {
	return &Client{
		backend: backendClient,
		now:     time.Now,
		logger:  slog.Default().WithGroup("auth").WithGroup("gotrue"),
	}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// sessionPayload is returned by the token endpoint. The signup endpoint
// returns either the same shape or a bare user when confirmation is pending.
type sessionPayload struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	RefreshToken string       `json:"refresh_token"`
	User         *userPayload `json:"user"`

	// Bare user fields of a confirmation-pending signup.
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*user.Grant, error) {
	var payload sessionPayload

	err := c.backend.Do(ctx, &backend.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Query:  url.Values{"grant_type": {grantPassword}},
		Body:   credentialsBody{Email: email, Password: password},
	}, &payload)
	if err != nil {
		return nil, err
	}

	return c.toGrant(&payload)
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*user.Grant, error) {
	var payload sessionPayload

	err := c.backend.Do(ctx, &backend.Request{
		Method: http.MethodPost,
		Path:   signupPath,
		Body:   credentialsBody{Email: email, Password: password},
	}, &payload)
	if err != nil {
		return nil, err
	}

	return c.toGrant(&payload)
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	var payload sessionPayload

	err := c.backend.Do(ctx, &backend.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Query:  url.Values{"grant_type": {grantRefresh}},
		Body:   refreshBody{RefreshToken: refreshToken},
	}, &payload)
	if err != nil {
		return nil, err
	}

	if payload.AccessToken == "" {
		return nil, fmt.Errorf("%w: refresh returned no access token", backend.ErrUnauthorized)
	}

	return c.toToken(&payload), nil
}

// SignOut revokes the refresh tokens of the session behind token.
func (c *Client) SignOut(ctx context.Context, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return ErrTokenRequired
	}

	return c.backend.Do(ctx, &backend.Request{
		Method: http.MethodPost,
		Path:   logoutPath,
		Token:  token,
	}, nil)
}

func (c *Client) CurrentUser(ctx context.Context, token *oauth2.Token) (*user.User, error) {
	if token == nil || token.AccessToken == "" {
		return nil, ErrTokenRequired
	}

	var payload userPayload

	if err := c.backend.Do(ctx, &backend.Request{
		Method: http.MethodGet,
		Path:   userPath,
		Token:  token,
	}, &payload); err != nil {
		return nil, err
	}

	return toUser(&payload)
}

func (c *Client) toGrant(payload *sessionPayload) (*user.Grant, error) {
	account := payload.User
	if account == nil && payload.ID != "" {
		account = &userPayload{ID: payload.ID, Email: payload.Email}
	}

	u, err := toUser(account)
	if err != nil {
		return nil, err
	}

	grant := &user.Grant{User: u}

	if payload.AccessToken != "" {
		grant.Token = c.toToken(payload)
	} else {
		c.logger.Info("account created without session", slog.String("user_id", u.ID().String()))
	}

	return grant, nil
}

func (c *Client) toToken(payload *sessionPayload) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  payload.AccessToken,
		TokenType:    payload.TokenType,
		RefreshToken: payload.RefreshToken,
	}

	switch {
	case payload.ExpiresAt > 0:
		token.Expiry = time.Unix(payload.ExpiresAt, 0).UTC()
	case payload.ExpiresIn > 0:
		token.Expiry = c.now().Add(time.Duration(payload.ExpiresIn) * time.Second).UTC()
	}

	return token
}

func toUser(payload *userPayload) (*user.User, error) {
	if payload == nil || payload.ID == "" {
		return nil, ErrUserMissing
	}

	id, err := user.NewIDFromString(payload.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserMissing, err)
	}

	return user.NewUser(id, payload.Email)
}
