package web

import (
	"testing"
	"time"

	"github.com/desertthunder/boardsync/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "0123456789abcdef0123456789abcdef"
	otherSecret = "fedcba9876543210fedcba9876543210"
)

func TestSessionCodec(t *testing.T) {
	codec, err := NewSessionCodec(testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		token, err := codec.Encode("identity-1")
		require.NoError(t, err)

		id, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "identity-1", id)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewSessionCodec(otherSecret, time.Hour)
		token, _ := other.Encode("identity-1")

		_, err := codec.Decode(token)
		assert.ErrorIs(t, err, errInvalidSession)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := codec.Encode("identity-1")
		require.NoError(t, err)

		later, _ := NewSessionCodec(testSecret, time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err = later.Decode(token)
		assert.ErrorIs(t, err, errInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Decode("not-a-jwt")
		assert.ErrorIs(t, err, errInvalidSession)
	})

	t.Run("weak secrets", func(t *testing.T) {
		for _, secret := range []string{"", placeholderSecret, "short-secret"} {
			_, err := NewSessionCodec(secret, 0)
			assert.ErrorIs(t, err, shared.ErrInvalidConfig, "secret %q", secret)
		}
	})

	t.Run("placeholder cannot sign sessions", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{IdentityID: "identity-1"})
		token, err := forged.SignedString([]byte(placeholderSecret))
		require.NoError(t, err)

		_, err = codec.Decode(token)
		assert.ErrorIs(t, err, errInvalidSession)
	})
}
