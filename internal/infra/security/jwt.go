package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("security: invalid token")

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// JWTManager signs short-lived access and longer-lived refresh tokens with a
// shared HMAC secret. The token kind is embedded in the claims so one token
// cannot stand in for the other.
type JWTManager struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type tokenClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

func (m JWTManager) IssueAccess(userID string, now time.Time) (string, error) {
	return m.issue(userID, kindAccess, now, m.accessTTL())
}

func (m JWTManager) IssueRefresh(userID string, now time.Time) (string, error) {
	return m.issue(userID, kindRefresh, now, m.refreshTTL())
}

func (m JWTManager) ParseAccess(token string) (string, error) {
	return m.parse(token, kindAccess)
}

func (m JWTManager) ParseRefresh(token string) (string, error) {
	return m.parse(token, kindRefresh)
}

func (m JWTManager) issue(userID, kind string, now time.Time, ttl time.Duration) (string, error) {
	if len(m.Secret) == 0 {
		return "", errors.New("security: signing secret required")
	}
	claims := tokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", fmt.Errorf("security: sign token: %w", err)
	}
	return signed, nil
}

func (m JWTManager) parse(token, wantKind string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.Kind != wantKind || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (m JWTManager) accessTTL() time.Duration {
	if m.AccessTTL > 0 {
		return m.AccessTTL
	}
	return 15 * time.Minute
}

func (m JWTManager) refreshTTL() time.Duration {
	if m.RefreshTTL > 0 {
		return m.RefreshTTL
	}
	return 7 * 24 * time.Hour
}
