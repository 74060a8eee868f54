package middleware

import (
	"fmt"
	"strings"

	"orvea_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// extractToken récupère le token depuis le header Bearer, sinon le cookie
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return utils.JWTSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims invalides")
	}
	return claims, nil
}

func setUserContext(c *gin.Context, claims jwt.MapClaims) bool {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return false
	}

	c.Set("user_id", userID)
	if name, ok := claims["name"].(string); ok {
		c.Set("name", name)
	}
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
	return true
}

// AuthRequired vérifie le JWT (header Bearer ou cookie) et place
// user_id / name / email / role dans le context Gin
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.Unauthorized(c, "Token manquant")
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			utils.Unauthorized(c, "Token invalide")
			return
		}

		if !setUserContext(c, claims) {
			utils.Unauthorized(c, "user_id manquant dans le token")
			return
		}

		c.Next()
	}
}

// OptionalAuth remplit le context si un token valide est présent,
// mais laisse passer les requêtes anonymes
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if claims, err := parseToken(tokenString); err == nil {
				setUserContext(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			utils.Forbidden(c, "Accès réservé aux administrateurs")
			return
		}
		c.Next()
	}
}
