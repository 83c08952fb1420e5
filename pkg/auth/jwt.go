// Package auth provides bearer-token authentication for the HTTP API and the
// WebSocket handshake. Both channels verify the same JWT credential and
// resolve it to an Identity{MemberID, FamilyID, Role}.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers malformed, tampered, and expired credentials.
	// The distinction is deliberately not surfaced to callers.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMissingToken indicates no credential was presented at all.
	ErrMissingToken = errors.New("authorization token required")
)

// Claims are the custom JWT claims carried by a familyhub credential.
type Claims struct {
	MemberID string `json:"member_id"`
	FamilyID string `json:"family_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256-signed identity tokens.
type TokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// NewTokenManager creates a token manager with the given secret and token
// lifetime. secretKey should be a strong random string (e.g. 32 bytes).
func NewTokenManager(secretKey string, tokenDuration time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Issue creates a signed credential for the given identity.
func (m *TokenManager) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		MemberID: id.MemberID.String(),
		FamilyID: id.FamilyID.String(),
		Role:     string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a credential, returning the caller identity.
// All failure modes (bad signature, garbage input, expiry) map to
// ErrInvalidToken.
func (m *TokenManager) Verify(credential string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		credential,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	memberID, err := uuid.Parse(claims.MemberID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad member_id", ErrInvalidToken)
	}
	familyID, err := uuid.Parse(claims.FamilyID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad family_id", ErrInvalidToken)
	}

	return Identity{
		MemberID: memberID,
		FamilyID: familyID,
		Role:     Role(claims.Role),
	}, nil
}
