package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"clinicbook/config"

	"github.com/golang-jwt/jwt"
)

const devSecret = "clinicbook-dev-secret"

func secretKey() []byte {
	if config.AppConfig.JWTSecret == "" {
		return []byte(devSecret)
	}
	return []byte(config.AppConfig.JWTSecret)
}

// TokenClaims is the decoded content of an access token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
}

// TokenTTL is the lifetime of access tokens.
func TokenTTL() time.Duration {
	if config.AppConfig.TokenTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(config.AppConfig.TokenTTLHours) * time.Hour
}

// GenerateToken creates a signed JWT for subject scoped to role.
// The token expires after the specified duration.
func GenerateToken(subject, email, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return parseWithKey(tokenString, secretKey())
}

func parseWithKey(tokenString string, key []byte) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ParseToken validates tokenString and extracts its claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return &TokenClaims{Subject: sub, Email: email, Role: role}, nil
}

// GenerateResetToken signs a short-lived password reset token. The key mixes in the
// current password hash, so the token stops verifying once the password changes.
func GenerateResetToken(userID, passwordHash string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     userID,
		"purpose": "password_reset",
		"exp":     time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(resetKey(passwordHash))
}

// VerifyResetToken checks a reset token against the user's current password hash.
func VerifyResetToken(tokenString, userID, passwordHash string) error {
	token, err := parseWithKey(tokenString, resetKey(passwordHash))
	if err != nil {
		return err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return errors.New("invalid token")
	}
	if sub, _ := claims["sub"].(string); sub != userID {
		return errors.New("token subject mismatch")
	}
	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return errors.New("token purpose mismatch")
	}
	return nil
}

func resetKey(passwordHash string) []byte {
	return append(secretKey(), passwordHash...)
}
