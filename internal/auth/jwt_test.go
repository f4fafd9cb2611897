package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_UsesConfiguredTTL(t *testing.T) {
	ttl := 2 * time.Hour
	tm := NewTokenManager("test-secret", ttl, 5*time.Minute)

	userID := uuid.New()
	start := time.Now()

	token, err := tm.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, userID, claims.UserID)

	assert.WithinDuration(t, start.Add(ttl), claims.ExpiresAt.Time, 2*time.Second)
}

func TestTokenManager_EditGrant(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 5*time.Minute)
	userID := uuid.New()

	grant, err := tm.GenerateEditGrant(userID)
	require.NoError(t, err)

	t.Run("accepted for its user", func(t *testing.T) {
		assert.NoError(t, tm.ValidateEditGrant(grant, userID))
	})

	t.Run("refused for another user", func(t *testing.T) {
		assert.ErrorIs(t, tm.ValidateEditGrant(grant, uuid.New()), ErrInvalidToken)
	})

	t.Run("not usable as a session", func(t *testing.T) {
		_, err := tm.ValidateToken(grant)
		assert.ErrorIs(t, err, ErrWrongScope)
	})

	t.Run("session is not a grant", func(t *testing.T) {
		session, err := tm.GenerateToken(userID)
		require.NoError(t, err)
		assert.ErrorIs(t, tm.ValidateEditGrant(session, userID), ErrWrongScope)
	})

	t.Run("expired grant", func(t *testing.T) {
		expired := NewTokenManager("test-secret", time.Hour, -time.Minute)
		old, err := expired.GenerateEditGrant(userID)
		require.NoError(t, err)
		assert.ErrorIs(t, tm.ValidateEditGrant(old, userID), jwt.ErrTokenExpired)
	})
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, time.Minute)
	other := NewTokenManager("other-secret", time.Hour, time.Minute)

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_AcceptsUnscopedBackendToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, time.Minute)
	userID := uuid.New()

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	got, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
}
