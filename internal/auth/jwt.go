package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token scopes. Session tokens are minted by the auth backend with the shared
// secret; edit grants are minted here after the password gate.
const (
	ScopeSession     = "session"
	ScopeProfileEdit = "profile:edit"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongScope   = errors.New("token scope mismatch")
)

// Claims defines the structured data we store in the JWT
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Scope  string    `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
	grantTTL  time.Duration
}

// NewTokenManager creates a manager signing with secret. ttl applies to
// session tokens and grantTTL to profile edit grants.
func NewTokenManager(secret string, ttl, grantTTL time.Duration) *TokenManager {
	return &TokenManager{secretKey: []byte(secret), ttl: ttl, grantTTL: grantTTL}
}

// GrantTTL is the lifetime of edit grants.
func (tm *TokenManager) GrantTTL() time.Duration {
	return tm.grantTTL
}

// GenerateToken creates a new session token. Used by tests and local tooling;
// production sessions come from the auth backend.
func (tm *TokenManager) GenerateToken(userID uuid.UUID) (string, error) {
	return tm.sign(userID, ScopeSession, tm.ttl)
}

// GenerateEditGrant creates a short-lived token allowing userID to open the
// profile edit page.
func (tm *TokenManager) GenerateEditGrant(userID uuid.UUID) (string, error) {
	return tm.sign(userID, ScopeProfileEdit, tm.grantTTL)
}

func (tm *TokenManager) sign(userID uuid.UUID, scope string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// ValidateToken parses and validates a session token. Tokens without a scope
// are treated as session tokens.
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	claims, err := tm.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Scope != "" && claims.Scope != ScopeSession {
		return nil, ErrWrongScope
	}
	return claims, nil
}

// ValidateEditGrant checks that tokenString is an unexpired edit grant for userID.
func (tm *TokenManager) ValidateEditGrant(tokenString string, userID uuid.UUID) error {
	claims, err := tm.parse(tokenString)
	if err != nil {
		return err
	}
	if claims.Scope != ScopeProfileEdit {
		return ErrWrongScope
	}
	if claims.UserID != userID {
		return ErrInvalidToken
	}
	return nil
}

func (tm *TokenManager) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
