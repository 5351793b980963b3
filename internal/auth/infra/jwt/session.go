package jwt

import (
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"golang.org/x/crypto/sha3"

	sessionCfg "github.com/KasumiMercury/todo-web/internal/auth/config/session"
	domain "github.com/KasumiMercury/todo-web/internal/auth/domain/session"
)

// SessionClaims is the payload of the session cookie. Only identifiers are
// carried; provider credentials stay in the session store.
type SessionClaims struct {
	jwt.Claims
}

type SessionJWTGenerator struct {
	sessionCfg *sessionCfg.Config
}

func NewSessionJWTGenerator(cfg *sessionCfg.Config) *SessionJWTGenerator {
	return &SessionJWTGenerator{
		sessionCfg: cfg,
	}
}

func (g *SessionJWTGenerator) Generate(session *domain.Session) (string, error) {
	if session == nil {
		return "", ErrSessionRequiredForToken
	}

	key := deriveHMACKey(g.sessionCfg.Secret)

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJWTSignerCreationFailed, err)
	}

	now := session.CreatedAt()
	if now.IsZero() {
		now = time.Now()
	}

	claims := SessionClaims{
		Claims: jwt.Claims{
			ID:       session.ID().String(),
			Subject:  session.UserID().String(),
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(session.ExpiresAt()),
		},
	}

	token, err := jwt.Signed(signer).Claims(claims).Serialize()
	if err != nil {
		return "", err
	}

	return token, nil
}

func (v *SessionJWTValidator) parseClaims(token string) (*SessionClaims, error) {
	key := deriveHMACKey(v.sessionCfg.Secret)

	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, err
	}

	//exhaustruct:ignore
	claims := &SessionClaims{}
	if err := parsed.Claims(key, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func deriveHMACKey(secret string) []byte {
	sum := sha3.Sum256([]byte(secret))

	return sum[:]
}

type SessionJWTValidator struct {
	sessionCfg *sessionCfg.Config
	now        func() time.Time
}

func NewSessionJWTValidator(cfg *sessionCfg.Config) *SessionJWTValidator {
	return &SessionJWTValidator{
		sessionCfg: cfg,
		now:        time.Now,
	}
}

func (v *SessionJWTValidator) Verify(token string) error {
	claims, err := v.parseClaims(token)
	if err != nil {
		return err
	}

	if err := claims.Validate(jwt.Expected{Time: v.now()}); err != nil {
		return err
	}

	return nil
}

func (v *SessionJWTValidator) ExtractSessionID(token string) (string, error) {
	claims, err := v.parseClaims(token)
	if err != nil {
		return "", err
	}

	if claims == nil || claims.ID == "" {
		return "", ErrSessionIDMissing
	}

	return claims.ID, nil
}
