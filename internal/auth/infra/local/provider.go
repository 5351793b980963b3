// Package local is an in-process auth provider for development and tests.
// Accounts and tokens live in memory and vanish on restart.
package local

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KasumiMercury/todo-web/internal/auth/domain/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

const (
	minPasswordLength = 6
	accessTokenTTL    = time.Hour
	tokenType         = "bearer"
)

type account struct {
	user         *user.User
	passwordHash []byte
}

type issuedToken struct {
	userID    user.ID
	expiresAt time.Time
}

type Provider struct {
	mu            sync.Mutex
	byEmail       map[string]*account
	byID          map[user.ID]*account
	accessTokens  map[string]issuedToken
	refreshTokens map[string]user.ID
	now           func() time.Time
	logger        *slog.Logger
}

func NewProvider() *Provider {
	return &Provider{
		byEmail:       make(map[string]*account),
		byID:          make(map[user.ID]*account),
		accessTokens:  make(map[string]issuedToken),
		refreshTokens: make(map[string]user.ID),
		now:           time.Now,
		logger:        slog.Default().WithGroup("auth").WithGroup("local"),
	}
}

func (p *Provider) SignUp(_ context.Context, email, password string) (*user.Grant, error) {
	key := normalizeEmail(email)
	if key == "" {
		return nil, errEmailMissing
	}

	if len(password) < minPasswordLength {
		return nil, errWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := user.NewID()
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(id, key)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[key]; exists {
		return nil, errUserExists
	}

	acc := &account{user: u, passwordHash: hash}
	p.byEmail[key] = acc
	p.byID[id] = acc

	p.logger.Info("account created", slog.String("user_id", id.String()))

	return &user.Grant{User: u, Token: p.issueLocked(id)}, nil
}

func (p *Provider) SignInWithPassword(_ context.Context, email, password string) (*user.Grant, error) {
	p.mu.Lock()
	acc, ok := p.byEmail[normalizeEmail(email)]
	p.mu.Unlock()

	if !ok {
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return &user.Grant{User: acc.user, Token: p.issueLocked(acc.user.ID())}, nil
}

// Refresh rotates a refresh token: the old one stops working.
func (p *Provider) Refresh(_ context.Context, refreshToken string) (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	userID, ok := p.refreshTokens[refreshToken]
	if !ok {
		return nil, errInvalidRefreshToken
	}

	delete(p.refreshTokens, refreshToken)

	return p.issueLocked(userID), nil
}

// SignOut revokes every token of the user behind token.
func (p *Provider) SignOut(_ context.Context, token *oauth2.Token) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	issued, err := p.lookupLocked(token)
	if err != nil {
		return err
	}

	for access, candidate := range p.accessTokens {
		if candidate.userID == issued.userID {
			delete(p.accessTokens, access)
		}
	}

	for refresh, candidate := range p.refreshTokens {
		if candidate == issued.userID {
			delete(p.refreshTokens, refresh)
		}
	}

	return nil
}

func (p *Provider) CurrentUser(_ context.Context, token *oauth2.Token) (*user.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	issued, err := p.lookupLocked(token)
	if err != nil {
		return nil, err
	}

	acc, ok := p.byID[issued.userID]
	if !ok {
		return nil, errInvalidToken
	}

	return acc.user, nil
}

// UserIDForToken resolves an access token to its owner. The in-memory task
// store uses it to enforce row ownership the way the hosted backend does.
func (p *Provider) UserIDForToken(accessToken string) (user.ID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	issued, err := p.lookupLocked(&oauth2.Token{AccessToken: accessToken})
	if err != nil {
		return "", false
	}

	return issued.userID, true
}

func (p *Provider) lookupLocked(token *oauth2.Token) (issuedToken, error) {
	if token == nil || token.AccessToken == "" {
		return issuedToken{}, errInvalidToken
	}

	issued, ok := p.accessTokens[token.AccessToken]
	if !ok {
		return issuedToken{}, errInvalidToken
	}

	if !p.now().Before(issued.expiresAt) {
		delete(p.accessTokens, token.AccessToken)

		return issuedToken{}, errInvalidToken
	}

	return issued, nil
}

func (p *Provider) issueLocked(userID user.ID) *oauth2.Token {
	expiresAt := p.now().Add(accessTokenTTL).UTC()
	access := uuid.NewString()
	refresh := uuid.NewString()

	p.accessTokens[access] = issuedToken{userID: userID, expiresAt: expiresAt}
	p.refreshTokens[refresh] = userID

	return &oauth2.Token{
		AccessToken:  access,
		TokenType:    tokenType,
		RefreshToken: refresh,
		Expiry:       expiresAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
