package user

import (
	"context"
	"net/url"
	"strings"
	"time"

	"clinicbook/apperrors"
	"clinicbook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// ForgotPassword issues a one hour reset token and returns the reset link.
// Mail delivery is not part of this service, so the link is logged.
func (s *DefaultUserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperrors.Validation("Email is required")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", apperrors.NotFound("User not found")
	}

	token, err := utils.GenerateResetToken(u.ID, u.PasswordHash, resetTokenTTL)
	if err != nil {
		return "", apperrors.Persistence("issue reset token", err)
	}

	u.ResetPasswordToken = utils.HashToken(token)
	u.ResetPasswordExpires = time.Now().Add(resetTokenTTL)
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}

	query := url.Values{"token": {token}, "email": {u.Email}}
	link := strings.TrimRight(s.ResetBase, "/") + "/reset-password?" + query.Encode()
	utils.GetLogger().Info("Password reset requested", zap.String("userId", u.ID), zap.String("resetUrl", link))
	return link, nil
}

// ResetPassword verifies the reset token and stores the new password.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || token == "" || newPassword == "" {
		return apperrors.Validation("Missing Details")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperrors.NotFound("User not found")
	}

	if u.ResetPasswordToken == "" || u.ResetPasswordToken != utils.HashToken(token) || time.Now().After(u.ResetPasswordExpires) {
		return apperrors.Validation("Invalid or expired token")
	}
	if err := utils.VerifyResetToken(token, u.ID, u.PasswordHash); err != nil {
		return apperrors.Validation("Invalid or expired token")
	}
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Persistence("hash password", err)
	}
	u.PasswordHash = string(hashed)
	u.ResetPasswordToken = ""
	u.ResetPasswordExpires = time.Time{}

	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	utils.GetLogger().Info("Password reset", zap.String("userId", u.ID))
	return nil
}
