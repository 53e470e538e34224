package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indicates the token is malformed or its signature does
	// not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates the token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// DevTokenIssuer mints and verifies HS256 bearer tokens. It stands in for the
// identity platform's signed custom tokens when Firebase credentials are not
// configured outside production; it is never used in production.
type DevTokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewDevTokenIssuer constructs an issuer signing with the shared secret.
func NewDevTokenIssuer(secret, issuer string, ttl time.Duration) *DevTokenIssuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DevTokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Mint issues a signed, time-bounded token scoped to the identity id.
func (i *DevTokenIssuer) Mint(identityID string) (string, error) {
	if identityID == "" {
		return "", fmt.Errorf("identity id is required")
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   identityID,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify validates a token and returns the identity id it is scoped to.
func (i *DevTokenIssuer) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	if parsed == nil || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
