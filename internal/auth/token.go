package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Issuer is the value of the iss claim on every token this service mints
const Issuer = "theatrum"

var (
	// ErrEmptySecret is returned when a token manager is built without a signing secret
	ErrEmptySecret = errors.New("token signing secret is empty")

	// ErrInvalidToken is returned for tokens that fail signature, issuer or expiry checks
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the subset of JWT claims the API relies on
type Claims struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
	Subject   string
}

// TokenManager issues and verifies HS256 bearer tokens
type TokenManager struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager signing with secret.
// Tokens expire ttl after issue.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue mints a signed token whose subject is userID
func (m *TokenManager) Issue(userID string) (string, error) {
	now := m.now()
	token, err := jwt.NewBuilder().
		Issuer(Issuer).
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(m.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, m.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify checks signature, issuer and expiry and returns the claims
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseString(tokenString,
		jwt.WithKey(jwa.HS256, m.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(Issuer),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token.Subject() == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Claims{
		Subject:   token.Subject(),
		IssuedAt:  token.IssuedAt(),
		ExpiresAt: token.Expiration(),
	}, nil
}
