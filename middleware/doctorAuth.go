package middleware

import (
	"context"

	doctorRepo "clinicbook/database/repository/doctor"
	"clinicbook/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthDoctorMiddleware accepts doctor tokens and sets CtxDoctorID.
func JWTAuthDoctorMiddleware(repo doctorRepo.DoctorRepository, authCache *redis.Client) gin.HandlerFunc {
	return jwtAuth(string(models.RoleDoctor), CtxDoctorID, authCache, func(ctx context.Context, id string) error {
		_, err := repo.GetByID(ctx, id)
		return err
	})
}
