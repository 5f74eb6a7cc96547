// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// Context keys set by the auth middlewares.
	CtxUserID   = "userID"
	CtxDoctorID = "doctorID"
	CtxAdmin    = "isAdmin"

	authCachePrefix = "auth:"
	authCacheTTL    = time.Hour
	notAuthorized   = "Not Authorized Login Again"
)

// AccountLookup confirms that the account behind a token still exists.
type AccountLookup func(ctx context.Context, id string) error

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Success: false, Message: notAuthorized})
}

// bearerClaims extracts and validates the bearer token, requiring role.
func bearerClaims(c *gin.Context, role string) (*utils.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return nil, false
	}
	claims, err := utils.ParseToken(tokenString)
	if err != nil || claims.Role != role {
		return nil, false
	}
	return claims, true
}

// accountExists checks the auth cache first and falls back to lookup on a miss.
// Confirmed accounts are cached for an hour.
func accountExists(ctx context.Context, cache *redis.Client, role, id string, lookup AccountLookup) bool {
	key := authCachePrefix + role + ":" + id

	if cache != nil {
		if err := cache.Get(ctx, key).Err(); err == nil {
			_ = cache.Expire(ctx, key, authCacheTTL).Err()
			return true
		} else if err != redis.Nil {
			utils.GetLogger().Warn("auth cache read failed, falling back to DB", zap.Error(err))
		}
	}

	if err := lookup(ctx, id); err != nil {
		return false
	}

	if cache != nil {
		_ = cache.Set(ctx, key, "1", authCacheTTL).Err()
	}
	return true
}

// jwtAuth builds a middleware for one token scope.
func jwtAuth(role, ctxKey string, cache *redis.Client, lookup AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, role)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if lookup != nil && !accountExists(c.Request.Context(), cache, role, claims.Subject, lookup) {
			abortUnauthorized(c)
			return
		}
		c.Set(ctxKey, claims.Subject)
		c.Next()
	}
}
