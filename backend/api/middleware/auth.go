package middleware

import (
	"net/http"
	"strings"

	"study-hub/backend/common"
	"study-hub/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// resolveIdentity extracts the caller's identity from the session cookie
// or a Bearer token, whichever is present. Returns false when neither is.
func resolveIdentity(c *gin.Context) bool {
	session := sessions.Default(c)
	if id, ok := session.Get("user_id").(int64); ok && id != 0 {
		username, _ := session.Get("username").(string)
		c.Set("user_id", id)
		c.Set("username", username)
		return true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}
	tokenString := parts[1]

	claims, err := service.ValidateToken(tokenString)
	if err != nil {
		return false
	}
	if common.RedisEnabled {
		blacklisted, _ := common.RDB.Exists(c, "jwt:blacklist:"+tokenString).Result()
		if blacklisted > 0 {
			return false
		}
	}
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	return true
}

// UserAuth rejects unauthenticated callers. Mutation routes sit behind it.
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolveIdentity(c) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "not authenticated",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves identity when present and continues either way.
// Query routes sit behind it and degrade to empty results for anonymous
// callers instead of failing.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		resolveIdentity(c)
		c.Next()
	}
}
