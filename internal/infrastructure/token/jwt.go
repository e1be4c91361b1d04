// Package token issues and verifies the HS256 bearer tokens that carry a
// caller's identity.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/99minutos/task-manager/internal/core/domain"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = time.Hour

var ErrEmptySecret = errors.New("token: signing secret must not be empty")

// Claims is the signed payload. The identity fields keep the names clients
// already decode; sub mirrors id.
type Claims struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer returns an Issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret string, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	i := &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// TTL returns the lifetime of tokens produced by Issue.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for identity, expiring TTL after now.
func (i *Issuer) Issue(identity domain.Identity) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		UserID:    identity.UserID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiryFor(now, i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// expiryFor returns the first whole second strictly after issuedAt+ttl. The
// exp claim only carries seconds and is exclusive, so this keeps the token
// valid at every instant up to and including issuedAt+ttl.
func expiryFor(issuedAt time.Time, ttl time.Duration) time.Time {
	return issuedAt.Add(ttl).Truncate(time.Second).Add(time.Second)
}

// Verify parses token and returns its identity. Malformed, expired, wrongly
// signed or non-HS256 tokens all yield domain.ErrInvalidToken.
func (i *Issuer) Verify(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing id claim", domain.ErrInvalidToken)
	}

	return domain.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
