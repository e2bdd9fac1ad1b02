// Package identity verifies caller credentials and signs upload tokens.
// Both sides are narrow interfaces so services can be tested with doubles.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned when a credential cannot be verified.
// Expired, malformed, and wrongly signed credentials are deliberately
// indistinguishable to callers.
var ErrInvalidCredential = errors.New("invalid or expired credential")

// Verifier turns an opaque bearer credential into a caller ID.
type Verifier interface {
	Verify(credential string) (string, error)
}

// Signer mints a signed, short-lived token carrying the given claims
// on behalf of a caller.
type Signer interface {
	Mint(callerID string, claims map[string]interface{}) (string, error)
}

// JWTVerifier validates HS256-signed identity tokens.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a Verifier for tokens signed with secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the credential and returns the caller ID
// from its subject claim.
func (v *JWTVerifier) Verify(credential string) (string, error) {
	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredential
	}

	callerID, _ := claims["sub"].(string)
	if callerID == "" {
		return "", ErrInvalidCredential
	}
	return callerID, nil
}

// JWTSigner mints HS256-signed tokens with a fixed validity window.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTSigner creates a Signer whose tokens expire after ttl.
func NewJWTSigner(secret string, ttl time.Duration) *JWTSigner {
	return &JWTSigner{secret: []byte(secret), ttl: ttl}
}

// Mint creates a signed token for callerID carrying the extra claims.
// Reserved registered claims (sub, iat, exp) cannot be overridden.
func (s *JWTSigner) Mint(callerID string, extra map[string]interface{}) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = callerID
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
