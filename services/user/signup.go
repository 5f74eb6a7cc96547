package user

import (
	"context"
	"errors"
	"strings"

	"clinicbook/apperrors"
	"clinicbook/models"
	"clinicbook/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a patient account and returns a patient-scoped token.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Email" && verrs[0].Tag() == "email" {
			return nil, apperrors.Validation("Please enter a valid email")
		}
		return nil, apperrors.Validation("Missing Details")
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Persistence("hash password", err)
	}

	newUser := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := s.Repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(newUser.ID, newUser.Email, string(models.RoleUser), utils.TokenTTL())
	if err != nil {
		return nil, apperrors.Persistence("issue token", err)
	}

	utils.GetLogger().Info("User registered", zap.String("userId", newUser.ID))
	return &AuthResponse{ID: newUser.ID, Token: token, Name: newUser.Name, Email: newUser.Email}, nil
}
