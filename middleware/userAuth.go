package middleware

import (
	"context"

	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthUserMiddleware accepts patient tokens and sets CtxUserID.
func JWTAuthUserMiddleware(repo userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return jwtAuth(string(models.RoleUser), CtxUserID, authCache, func(ctx context.Context, id string) error {
		_, err := repo.GetByID(ctx, id)
		return err
	})
}
