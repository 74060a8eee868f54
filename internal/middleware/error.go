package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"orvea_back_end/internal/config"
	"orvea_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// Recovery intercepte les panics et renvoie une erreur 500 générique.
// La stack trace n'est exposée qu'en dehors de la production.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				log.Printf("❌ Panic sur %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, r, stack)

				resp := utils.Response{
					Success: false,
					Message: "Erreur interne du serveur",
				}
				if !config.IsProduction() {
					resp.Stack = fmt.Sprintf("%v\n%s", r, stack)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}

// NotFoundHandler convertit toute route inconnue en 404 enveloppé
// (branché sur NoRoute, avant le handler générique)
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFound(c, "Route introuvable - "+c.Request.URL.Path)
	}
}
