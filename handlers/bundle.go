// File: clinicbook/handlers/bundle.go
package handlers

import (
	doctorRepoPkg "clinicbook/database/repository/doctor"
	userRepoPkg "clinicbook/database/repository/user"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups the endpoint handlers and what the auth middlewares need.
type HandlerBundle struct {
	UserRepo   userRepoPkg.UserRepository
	DoctorRepo doctorRepoPkg.DoctorRepository
	AuthCache  *redis.Client

	User   *UserHandler
	Doctor *DoctorHandler
	Admin  *AdminHandler
}
