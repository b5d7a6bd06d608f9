// Package auth implements the stateless authentication primitives: JWT
// minting/verification, bcrypt password hashing and the per-request identity
// with its ownership check. All types are safe for concurrent use once built.
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minKeyBytes is the minimum decoded signing key length. HMAC-SHA256 keys
// shorter than the hash output weaken the MAC, so anything under 256 bits is
// rejected at startup.
const minKeyBytes = 32

var (
	// ErrTokenInvalid covers malformed tokens, bad signatures and missing claims.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned once the exp claim is reached. The check is
	// strict: a token presented exactly at its expiry instant is expired.
	ErrTokenExpired = errors.New("token expired")
)

// tokenClaims is the signed claim set carried by every access token.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec mints and verifies HS256 access tokens. The signing key and TTL
// are fixed at construction and never change for the process lifetime.
type TokenCodec struct {
	key []byte
	ttl time.Duration
}

// NewTokenCodec builds a codec from a base64-encoded signing key and a token
// lifetime. It fails when the key is missing, not valid base64, shorter than
// 256 bits decoded, or when ttl is not positive. Callers are expected to treat
// any error as fatal at startup rather than deferring it to request time.
func NewTokenCodec(base64Key string, ttl time.Duration) (*TokenCodec, error) {
	if base64Key == "" {
		return nil, errors.New("token codec: signing key is not set")
	}
	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("token codec: signing key is not valid base64: %w", err)
	}
	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("token codec: signing key is %d bytes, need at least %d", len(key), minKeyBytes)
	}
	if ttl <= 0 {
		return nil, errors.New("token codec: token ttl must be positive")
	}
	return &TokenCodec{key: key, ttl: ttl}, nil
}

// Mint signs a token for the given subject (user id) and email claim.
// issuedAt is now, expiry is now + the configured TTL.
func (c *TokenCodec) Mint(subject, email string) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and extracts the identity
// it carries. Expired tokens return ErrTokenExpired; every other failure mode
// (tampered signature, wrong algorithm, malformed structure, empty subject)
// returns ErrTokenInvalid.
func (c *TokenCodec) Verify(tokenStr string) (*Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.key, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return &Identity{Subject: claims.Subject, Email: claims.Email}, nil
}
