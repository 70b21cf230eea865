package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"platelink/internal/utils"
)

// AuthRequired validates the bearer token and puts the user's ObjectID in
// the context under "user_id".
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		userID, err := utils.ValidateAccessToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrInvalidToken})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth attributes the request when a valid token is present but
// never rejects. Anonymous plate search goes through here.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if userID, err := utils.ValidateAccessToken(tokenString, jwtSecret); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}

	return tokenString, true
}
