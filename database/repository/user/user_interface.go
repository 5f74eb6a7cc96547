package userRepo

import (
	"context"

	"clinicbook/models"
)

// UserRepository defines methods for patient data access.
type UserRepository interface {
	// Create inserts a new user record. A duplicate email yields a Conflict error.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID. A missing user yields a NotFound error.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email. It returns nil, nil when no user matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update replaces the stored record with user.
	Update(ctx context.Context, user *models.User) error
	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)
}
