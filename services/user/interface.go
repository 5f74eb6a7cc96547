package user

import (
	"context"
	"io"

	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
	"clinicbook/services/storage"

	"github.com/go-playground/validator/v10"
)

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate, image *ImageInput) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Uploader  storage.ImageUploader
	ResetBase string
	validate  *validator.Validate
}

func NewUserService(repo userRepo.UserRepository, uploader storage.ImageUploader, resetBase string) *DefaultUserService {
	return &DefaultUserService{
		Repo:      repo,
		Uploader:  uploader,
		ResetBase: resetBase,
		validate:  validator.New(),
	}
}

// RegisterRequest is the patient sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ImageInput is an uploaded image file.
type ImageInput struct {
	File     io.Reader
	Filename string
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
