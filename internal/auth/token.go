package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/skillswap/skillswap/internal/model"
)

// ErrTokenInvalid is returned for any token that fails verification.
// Callers cannot tell a bad signature from an expired token.
var ErrTokenInvalid = errors.New("invalid or expired token")

// Claims is the JWT payload carried by a session token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 session tokens.
// It is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokenOption configures a TokenCodec.
type TokenOption func(*TokenCodec)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec creates a codec signing with secret.
func NewTokenCodec(secret []byte, ttl time.Duration, issuer string, opts ...TokenOption) *TokenCodec {
	c := &TokenCodec{
		secret: secret,
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the lifetime of issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for identity and returns it with its expiry.
func (c *TokenCodec) Issue(identity model.Identity) (string, time.Time, error) {
	if identity.UserID <= 0 {
		return "", time.Time{}, fmt.Errorf("issue token: user id must be positive")
	}

	issuedAt := c.now()

	claims := &Claims{
		UserID: identity.UserID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	// NumericDate is truncated to whole seconds; report the signed value.
	return token, claims.ExpiresAt.Time, nil
}

// Verify checks signature, algorithm and expiry, and returns the identity
// encoded in the token. Every failure is reported as ErrTokenInvalid.
func (c *TokenCodec) Verify(token string) (*model.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.UserID <= 0 {
		return nil, ErrTokenInvalid
	}

	return &model.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
