package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// DecodeClaim reads a claim out of a JWT payload WITHOUT verifying the
// signature or expiry. The backend re-validates the token on every
// request; a claim decoded here is only good for namespacing local
// state, never for authorization.
func DecodeClaim(raw, name string) (any, bool) {
	if raw == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, false
	}
	v, ok := claims[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// DecodeUserID extracts the user_id claim from an access token.
// Any malformed token yields (0, false), never an error.
func DecodeUserID(raw string) (uint, bool) {
	v, ok := DecodeClaim(raw, "user_id")
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f < 0 {
		return 0, false
	}
	return uint(f), true
}
