package web

import (
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/boardsync/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultSessionTTL = 30 * 24 * time.Hour

	// MinSessionSecretLen is the shortest HS256 key the codec accepts.
	MinSessionSecretLen = 32
)

// placeholderSecret is the value shipped in config.example.toml.
const placeholderSecret = "change-me"

// SessionClaims identify the browser's identity record.
type SessionClaims struct {
	jwt.RegisteredClaims
	IdentityID string `json:"identity_id"`
}

// SessionCodec signs and verifies the session cookie value.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionCodec creates an HS256 codec.
// The secret must be set, must not be the example placeholder, and must be at least [MinSessionSecretLen] bytes.
func NewSessionCodec(secret string, ttl time.Duration) (*SessionCodec, error) {
	switch {
	case secret == "":
		return nil, fmt.Errorf("%w: server.session_secret is empty", shared.ErrInvalidConfig)
	case secret == placeholderSecret:
		return nil, fmt.Errorf("%w: server.session_secret is still the example placeholder", shared.ErrInvalidConfig)
	case len(secret) < MinSessionSecretLen:
		return nil, fmt.Errorf("%w: server.session_secret must be at least %d bytes", shared.ErrInvalidConfig, MinSessionSecretLen)
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Encode returns a signed token carrying identityID.
func (c *SessionCodec) Encode(identityID string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		IdentityID: identityID,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies tokenString and returns the identity id it carries.
func (c *SessionCodec) Decode(tokenString string) (string, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidSession, err)
	}

	if !token.Valid || claims.IdentityID == "" {
		return "", errInvalidSession
	}

	return claims.IdentityID, nil
}

var errInvalidSession = errors.New("invalid session")
