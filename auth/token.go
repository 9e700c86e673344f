package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkpress/inkpress/model"
	"github.com/pkg/errors"
)

// TokenTTL is how long an issued session token stays valid. Matches the
// max age of the session cookie.
const TokenTTL = 7 * 24 * time.Hour

// TokenCookieName is the HTTP-only cookie carrying the session token.
const TokenCookieName = "token"

// ErrInvalidToken is returned for any token that does not verify: bad
// signature, expired, malformed. Callers never learn which.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of a session token.
type Claims struct {
	UserId string         `json:"id"`
	Email  string         `json:"email"`
	Role   model.UserRole `json:"role"`
	Name   string         `json:"name"`
	jwt.RegisteredClaims
}

func signingSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret_key_123456789"
	}
	return []byte(secret)
}

// IssueToken signs a session token for the given user with a 7 day
// expiry. Pure computation, no side effects.
func IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserId: user.Id,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingSecret())
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}
	return signed, nil
}

// VerifyToken parses and validates tokenString and returns its claims.
// Any failure mode comes back as ErrInvalidToken, it never panics on
// malformed input.
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
