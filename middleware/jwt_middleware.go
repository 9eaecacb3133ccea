// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// JwtCustomClaims for issued session tokens
type JwtCustomClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	UserType string `json:"userType"`
	jwt.StandardClaims
}

// Valid implements the Claims interface
func (c JwtCustomClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// GenerateJWT issues a signed 24h session token for the given identity.
// Nothing server-side stores or later requires these tokens; they exist so
// clients hold a verifiable credential instead of a reversible string.
func GenerateJWT(email, name, userType string) (string, error) {
	claims := &JwtCustomClaims{
		Email:    email,
		Name:     name,
		UserType: userType,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(GetJWTSecret()))
}

// ParseJWT validates a signed token and returns its claims
func ParseJWT(tokenString string) (*JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(GetJWTSecret()), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
