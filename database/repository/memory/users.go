package memoryRepo

import (
	"context"
	"time"

	"clinicbook/apperrors"
	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"

	"github.com/google/uuid"
)

var _ userRepo.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return apperrors.Conflict("User already exists")
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	out := *u
	return &out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return apperrors.NotFound("User not found")
	}
	user.UpdatedAt = time.Now()
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}
