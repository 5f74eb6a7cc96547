package middleware

import (
	"clinicbook/models"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware accepts admin tokens. Admin accounts live in configuration,
// so there is no store lookup.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, string(models.RoleAdmin))
		if !ok {
			abortUnauthorized(c)
			return
		}
		c.Set(CtxAdmin, true)
		c.Set(CtxUserID, claims.Subject)
		c.Next()
	}
}
