package user

import (
	"context"
	"strings"

	"clinicbook/apperrors"
	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UpdateProfile replaces the editable profile fields and optionally the profile image.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate, image *ImageInput) (*models.User, error) {
	required := []string{
		update.Name, update.Phone, update.DOB, update.Gender, update.Age,
		update.EmergencyContact, update.PreMedical, update.Allergy, update.Blood,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return nil, apperrors.Validation("Data Missing")
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Name = strings.TrimSpace(update.Name)
	u.Phone = update.Phone
	u.Address = update.Address
	u.DOB = update.DOB
	u.Gender = update.Gender
	u.Age = update.Age
	u.EmergencyContact = update.EmergencyContact
	u.PreMedical = update.PreMedical
	u.Allergy = update.Allergy
	u.Blood = update.Blood

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		if url != "" {
			u.Image = url
		}
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Profile updated", zap.String("userId", userID))
	return u, nil
}

func (s *DefaultUserService) uploadImage(ctx context.Context, image *ImageInput) (string, error) {
	if s.Uploader == nil {
		utils.GetLogger().Warn("image upload skipped, no uploader configured")
		return "", nil
	}
	url, err := s.Uploader.UploadImage(ctx, image.File, image.Filename)
	if err != nil {
		return "", apperrors.Persistence("upload image", err)
	}
	return url, nil
}
