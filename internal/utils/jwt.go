package utils

import (
	"os"
	"time"

	"orvea_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// JWTSecret retourne la clé de signature (lue à chaque appel pour rester
// testable, avec un fallback de dev)
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateJWT signe un token HS256 valable 30 jours
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
