package doctor

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"clinicbook/apperrors"
	"clinicbook/models"
	userService "clinicbook/services/user"
	"clinicbook/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login checks the configured admin credentials and returns an admin-scoped token.
func (s *DefaultAdminService) Login(ctx context.Context, email, password string) (string, error) {
	if s.AdminPassword == "" {
		return "", apperrors.Unauthorized("Admin login is disabled")
	}
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(strings.ToLower(s.AdminEmail))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.AdminPassword)) == 1
	if !emailOK || !passOK {
		return "", apperrors.Unauthorized("Invalid credentials")
	}

	token, err := utils.GenerateToken("admin", s.AdminEmail, string(models.RoleAdmin), utils.TokenTTL())
	if err != nil {
		return "", apperrors.Persistence("issue token", err)
	}
	return token, nil
}

// AddDoctor validates the form, hashes the password and stores the new doctor.
func (s *DefaultAdminService) AddDoctor(ctx context.Context, req AddDoctorRequest, image *userService.ImageInput) (*models.Doctor, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "Email" && fe.Tag() == "email" {
					return nil, apperrors.Validation("Please enter a valid email")
				}
			}
		}
		return nil, apperrors.Validation("Missing Details")
	}
	if err := userService.VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Doctors.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Doctor already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Persistence("hash password", err)
	}

	d := &models.Doctor{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Speciality:   req.Speciality,
		Degree:       req.Degree,
		Experience:   req.Experience,
		About:        req.About,
		Fees:         req.Fees,
		Address:      req.Address,
		Available:    true,
		SlotsBooked:  models.SlotLedger{},
	}

	if image != nil && s.Uploader != nil {
		url, err := s.Uploader.UploadImage(ctx, image.File, image.Filename)
		if err != nil {
			return nil, apperrors.Persistence("upload image", err)
		}
		d.Image = url
	}

	if err := s.Doctors.Create(ctx, d); err != nil {
		return nil, err
	}
	s.Cache.InvalidateList(ctx)

	utils.GetLogger().Info("Doctor added", zap.String("doctorId", d.ID), zap.String("speciality", d.Speciality))
	d.PasswordHash = ""
	return d, nil
}

// Dashboard summarizes the whole clinic.
func (s *DefaultAdminService) Dashboard(ctx context.Context) (*models.AdminDashboard, error) {
	doctors, err := s.Doctors.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	appts, err := s.Appointments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AdminDashboard{
		Doctors:            int(doctors),
		Appointments:       len(appts),
		Patients:           int(users),
		LatestAppointments: latest(appts),
	}, nil
}
