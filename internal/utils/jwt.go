package utils

import (
	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session token for the given username. The
// token carries no expiry claim; clients hold it until they discard it.
func GenerateToken(secret, username string) (string, error) {
	claims := &sessionClaims{
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token signature and returns the embedded username.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*sessionClaims); ok && token.Valid {
		return claims.Username, nil
	}

	return "", jwt.ErrTokenInvalidClaims
}
