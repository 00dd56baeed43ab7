// internal/utils/session.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AdminSessionCookie is the HTTP-only cookie carrying the admin session token.
const AdminSessionCookie = "nes-admin-session"

// SessionTTL bounds how long an admin login stays valid.
const SessionTTL = 24 * time.Hour

type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var sessionSecret = []byte("dev-password-change-me")

func SetSessionSecret(secret string) {
	sessionSecret = []byte(secret)
}

// GenerateSessionToken signs an admin session token valid for SessionTTL.
func GenerateSessionToken() (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "newerastudio-storefront",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

// ValidateSessionToken verifies the signature and expiry of a session token.
func ValidateSessionToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return sessionSecret, nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Role != "admin" {
		return errors.New("invalid session token")
	}
	return nil
}
