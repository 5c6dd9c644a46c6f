package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"clarimed/config"

	"github.com/golang-jwt/jwt"
)

func sessionSecret() []byte {
	secret := config.AppConfig.SessionSecret
	if secret == "" {
		secret = "clarimed-dev-secret"
	}
	return []byte(secret)
}

// SessionClaims is what the signed session cookie carries: the upstream API
// session token plus the per-session CSRF secret for the double-submit check.
type SessionClaims struct {
	UpstreamToken string `json:"upstream_token"`
	CSRFSecret    string `json:"csrf_secret"`
	Email         string `json:"email"`
	jwt.StandardClaims
}

// HashToken computes a SHA-256 hash of the token string. Used wherever a
// token has to appear in a cache key or a log line.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewCSRFSecret generates a random per-session CSRF secret.
func NewCSRFSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SignSessionCookie creates the signed session cookie value.
func SignSessionCookie(upstreamToken, csrfSecret, email string, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		UpstreamToken: upstreamToken,
		CSRFSecret:    csrfSecret,
		Email:         email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret())
}

// ParseSessionCookie validates the cookie value and returns its claims.
func ParseSessionCookie(value string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return sessionSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session cookie")
	}
	return claims, nil
}
