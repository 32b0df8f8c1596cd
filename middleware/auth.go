package middleware

import (
	"strings"

	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts storefront bearer tokens. The raw token is kept in
// the context because checkout calls to the marketplace API run with it.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			utils.LogError("Invalid Bearer token format")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(utils.ContextUserID, claims.UserID)
		c.Set(utils.ContextRole, claims.Role)
		c.Set(utils.ContextToken, tokenString)
		utils.LogDebug("User %s authenticated", claims.UserID)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(utils.ContextUserID); !exists {
			utils.LogError("User not found in context")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		if c.GetString(utils.ContextRole) != utils.RoleAdmin {
			utils.LogError("Non-admin user attempted admin access: %s", c.GetString(utils.ContextUserID))
			utils.Forbidden(c, utils.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
