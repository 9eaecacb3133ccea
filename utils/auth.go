// utils/auth.go
package utils

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/serenemind/portal_backend/middleware"
)

// HashPassword stores only bcrypt hashes, never the raw password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash compares a raw password against its stored hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateTokenResponse represents the response for token validation
type ValidateTokenResponse struct {
	Valid     bool       `json:"valid"`
	Email     string     `json:"email,omitempty"`
	Name      string     `json:"name,omitempty"`
	UserType  string     `json:"userType,omitempty"`
	Message   string     `json:"message,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// ValidateToken checks a session token and reports what it carries.
// Lets clients verify session validity without any server-side session storage.
func ValidateToken(tokenString string) *ValidateTokenResponse {
	if tokenString == "" {
		return &ValidateTokenResponse{
			Valid:   false,
			Message: "No token provided",
		}
	}

	claims, err := middleware.ParseJWT(tokenString)
	if err != nil {
		return &ValidateTokenResponse{
			Valid:   false,
			Message: "Invalid token: " + err.Error(),
		}
	}

	var expiresAt *time.Time
	if claims.ExpiresAt > 0 {
		expTime := time.Unix(claims.ExpiresAt, 0)
		expiresAt = &expTime
	}

	return &ValidateTokenResponse{
		Valid:     true,
		Email:     claims.Email,
		Name:      claims.Name,
		UserType:  claims.UserType,
		Message:   "Token is valid",
		ExpiresAt: expiresAt,
	}
}

// ValidateTokenFromHeader extracts a bearer token from an Authorization header and validates it
func ValidateTokenFromHeader(authHeader string) *ValidateTokenResponse {
	if authHeader == "" {
		return &ValidateTokenResponse{
			Valid:   false,
			Message: "No authorization header provided",
		}
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return &ValidateTokenResponse{
			Valid:   false,
			Message: "Invalid authorization header format",
		}
	}

	return ValidateToken(authHeader[7:])
}
