package user

import (
	"context"
	"strings"

	"clinicbook/apperrors"
	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login checks the credentials and returns a patient-scoped token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.Validation("Missing Details")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("User does not exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		utils.GetLogger().Debug("Login: password mismatch", zap.String("userId", u.ID))
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, string(models.RoleUser), utils.TokenTTL())
	if err != nil {
		return nil, apperrors.Persistence("issue token", err)
	}
	return &AuthResponse{ID: u.ID, Token: token, Name: u.Name, Email: u.Email}, nil
}
