package utils // package utils provides helper functions for tokens, hashing and input normalization

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AdminToken represents a signed JWT granting access to the admin
// endpoints (payment verification and cancellation).  The Token field
// contains the JWT string, Exp its UTC expiration time.  There is a
// single admin identity, so the token carries no subject beyond a
// fixed role claim.
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT for the admin identity.
// It takes the signing secret and a TTL in minutes and returns an
// AdminToken containing the signed token and its expiration time.
// The JWT includes a role claim, expiration (exp) and issued at (iat).
func NewAdminToken(secret string, ttlMin int) (AdminToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"role": "ADMIN",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}
