package doctor

import (
	"context"
	"math"
	"strings"

	"clinicbook/apperrors"
	"clinicbook/models"
	userService "clinicbook/services/user"
	"clinicbook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login checks doctor credentials and returns a doctor-scoped token.
func (s *DefaultDoctorService) Login(ctx context.Context, email, password string) (*userService.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.Validation("Missing Details")
	}

	d, err := s.Doctors.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := utils.GenerateToken(d.ID, d.Email, string(models.RoleDoctor), utils.TokenTTL())
	if err != nil {
		return nil, apperrors.Persistence("issue token", err)
	}
	return &userService.AuthResponse{ID: d.ID, Token: token, Name: d.Name, Email: d.Email}, nil
}

func (s *DefaultDoctorService) GetProfile(ctx context.Context, doctorID string) (*models.Doctor, error) {
	d, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	d.PasswordHash = ""
	return d, nil
}

func (s *DefaultDoctorService) UpdateProfile(ctx context.Context, doctorID string, update models.DoctorUpdate) error {
	if update.Fees != nil && (*update.Fees < 0 || math.IsInf(*update.Fees, 0) || math.IsNaN(*update.Fees)) {
		return apperrors.Validation("Invalid fees")
	}
	if err := s.Doctors.UpdateProfile(ctx, doctorID, update); err != nil {
		return err
	}
	s.Cache.InvalidateList(ctx)
	utils.GetLogger().Info("Doctor profile updated", zap.String("doctorId", doctorID))
	return nil
}

// ChangeAvailability toggles whether the doctor accepts bookings and returns the new value.
func (s *DefaultDoctorService) ChangeAvailability(ctx context.Context, doctorID string) (bool, error) {
	if doctorID == "" {
		return false, apperrors.Validation("Missing Details")
	}
	d, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return false, err
	}
	available := !d.Available
	if err := s.Doctors.SetAvailability(ctx, doctorID, available); err != nil {
		return false, err
	}
	s.Cache.InvalidateList(ctx)
	utils.GetLogger().Info("Doctor availability changed", zap.String("doctorId", doctorID), zap.Bool("available", available))
	return available, nil
}

// ListPublic returns the doctor list shown to patients, served from cache when possible.
func (s *DefaultDoctorService) ListPublic(ctx context.Context) ([]models.Doctor, error) {
	if doctors, ok := s.Cache.get(ctx); ok {
		return doctors, nil
	}
	doctors, err := s.Doctors.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.set(ctx, doctors)
	return doctors, nil
}

func (s *DefaultDoctorService) ListAll(ctx context.Context) ([]models.Doctor, error) {
	return s.Doctors.ListAll(ctx)
}

// Dashboard summarizes the doctor's earnings and recent appointments.
func (s *DefaultDoctorService) Dashboard(ctx context.Context, doctorID string) (*models.DoctorDashboard, error) {
	appts, err := s.Appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	var earnings float64
	patients := map[string]struct{}{}
	for _, a := range appts {
		if a.IsCompleted || a.Payment {
			earnings += a.Amount
		}
		patients[a.UserID] = struct{}{}
	}

	return &models.DoctorDashboard{
		Earnings:           earnings,
		Appointments:       len(appts),
		Patients:           len(patients),
		LatestAppointments: latest(appts),
	}, nil
}

const latestCount = 5

// latest expects appts newest first.
func latest(appts []models.Appointment) []models.Appointment {
	if len(appts) > latestCount {
		return appts[:latestCount]
	}
	return appts
}
