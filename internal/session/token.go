package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValid reports whether token is a compact JWT whose exp claim is still
// in the future. Neither the header nor the signature is checked; only the
// server can verify a token.
func TokenValid(token string) bool {
	return TokenValidAt(token, time.Now())
}

// TokenValidAt is TokenValid against an explicit clock. It never panics:
// anything that fails to decode is invalid.
func TokenValidAt(token string, now time.Time) bool {
	exp, ok := expiry(token)
	if !ok {
		return false
	}
	return exp.After(now)
}

// ExpiresAt returns the token's exp claim, or the zero time when it has none.
func ExpiresAt(token string) time.Time {
	exp, _ := expiry(token)
	return exp
}

func expiry(token string) (time.Time, bool) {
	if token == "" || strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}
	payload := strings.Split(token, ".")[1]
	raw, err := jwt.NewParser(jwt.WithPaddingAllowed()).DecodeSegment(payload)
	if err != nil {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
