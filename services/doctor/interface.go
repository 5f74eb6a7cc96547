package doctor

import (
	"context"

	appointmentRepo "clinicbook/database/repository/appointment"
	doctorRepo "clinicbook/database/repository/doctor"
	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
	"clinicbook/services/storage"
	userService "clinicbook/services/user"

	"github.com/go-playground/validator/v10"
)

type DoctorService interface {
	Login(ctx context.Context, email, password string) (*userService.AuthResponse, error)
	GetProfile(ctx context.Context, doctorID string) (*models.Doctor, error)
	UpdateProfile(ctx context.Context, doctorID string, update models.DoctorUpdate) error
	ChangeAvailability(ctx context.Context, doctorID string) (bool, error)
	ListPublic(ctx context.Context) ([]models.Doctor, error)
	ListAll(ctx context.Context) ([]models.Doctor, error)
	Dashboard(ctx context.Context, doctorID string) (*models.DoctorDashboard, error)
}

type AdminService interface {
	Login(ctx context.Context, email, password string) (string, error)
	AddDoctor(ctx context.Context, req AddDoctorRequest, image *userService.ImageInput) (*models.Doctor, error)
	Dashboard(ctx context.Context) (*models.AdminDashboard, error)
}

// DefaultDoctorService implements DoctorService.
type DefaultDoctorService struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Cache        *ListCache
}

func NewDoctorService(doctors doctorRepo.DoctorRepository, appointments appointmentRepo.AppointmentRepository, cache *ListCache) *DefaultDoctorService {
	return &DefaultDoctorService{Doctors: doctors, Appointments: appointments, Cache: cache}
}

// DefaultAdminService implements AdminService. Admin credentials come from configuration.
type DefaultAdminService struct {
	Doctors       doctorRepo.DoctorRepository
	Users         userRepo.UserRepository
	Appointments  appointmentRepo.AppointmentRepository
	Uploader      storage.ImageUploader
	Cache         *ListCache
	AdminEmail    string
	AdminPassword string
	validate      *validator.Validate
}

func NewAdminService(
	doctors doctorRepo.DoctorRepository,
	users userRepo.UserRepository,
	appointments appointmentRepo.AppointmentRepository,
	uploader storage.ImageUploader,
	cache *ListCache,
	adminEmail, adminPassword string,
) *DefaultAdminService {
	return &DefaultAdminService{
		Doctors:       doctors,
		Users:         users,
		Appointments:  appointments,
		Uploader:      uploader,
		Cache:         cache,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		validate:      validator.New(),
	}
}

// AddDoctorRequest is the admin form for onboarding a doctor.
type AddDoctorRequest struct {
	Name       string         `json:"name" validate:"required"`
	Email      string         `json:"email" validate:"required,email"`
	Password   string         `json:"password" validate:"required"`
	Speciality string         `json:"speciality" validate:"required"`
	Degree     string         `json:"degree" validate:"required"`
	Experience string         `json:"experience" validate:"required"`
	About      string         `json:"about" validate:"required"`
	Fees       float64        `json:"fees" validate:"gte=0"`
	Address    models.Address `json:"address"`
}
