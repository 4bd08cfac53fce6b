package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AdminClaims is the typed credential decoded from an admin token. One
// verification function produces it and protected handlers consume it by
// explicit parameter passing; no loose claim maps cross package borders.
type AdminClaims struct {
	AdminID   uint64
	Username  string
	ExpiresAt time.Time
}

// AdminToken represents a signed JWT for an administrator along with its
// expiry. The Token field contains the serialized JWT string placed in the
// Authorization header when calling protected endpoints.
type AdminToken struct {
	Token string
	Exp   time.Time
}

// ErrInvalidToken covers every token verification failure: missing,
// malformed, badly signed or expired. Callers respond 401 uniformly.
var ErrInvalidToken = errors.New("invalid token")

// NewAdminToken builds and signs an HS256 JWT for an administrator. The
// JWT carries the admin id as subject, the username, expiration and issued
// at. ttlHours controls token lifetime.
func NewAdminToken(secret string, adminID uint64, username string, ttlHours int) (AdminToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":      adminID,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}

// ParseAdminToken verifies a serialized admin JWT and returns its typed
// claims. It enforces the HMAC signing method and rejects expired tokens
// (jwt/v5 validates exp during Parse). Every failure mode collapses into
// ErrInvalidToken.
func ParseAdminToken(secret, raw string) (AdminClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return AdminClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return AdminClaims{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
	if !ok || sub <= 0 {
		return AdminClaims{}, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return AdminClaims{}, ErrInvalidToken
	}
	expVal, ok := claims["exp"].(float64)
	if !ok {
		return AdminClaims{}, ErrInvalidToken
	}
	return AdminClaims{
		AdminID:   uint64(sub),
		Username:  username,
		ExpiresAt: time.Unix(int64(expVal), 0).UTC(),
	}, nil
}
