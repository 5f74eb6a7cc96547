// File: clinicbook/handlers/admin.go
package handlers

import (
	"math"
	"strconv"
	"strings"

	"clinicbook/apperrors"
	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/booking"
	"clinicbook/services/doctor"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	AdminService   doctor.AdminService
	DoctorService  doctor.DoctorService
	BookingService booking.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(as doctor.AdminService, ds doctor.DoctorService, bs booking.BookingService) *AdminHandler {
	return &AdminHandler{AdminService: as, DoctorService: ds, BookingService: bs}
}

func (ah *AdminHandler) actor(c *gin.Context) models.Actor {
	return models.AdminActor(c.GetString(middleware.CtxUserID))
}

// LoginHandler handles POST /api/admin/login.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	token, err := ah.AdminService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"token": token})
}

// AddDoctorHandler handles POST /api/admin/add-doctor (multipart form).
func (ah *AdminHandler) AddDoctorHandler(c *gin.Context) {
	image, closeImage, err := formImage(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer closeImage()

	fees, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("fees")), 64)
	if err != nil || math.IsInf(fees, 0) || math.IsNaN(fees) {
		utils.RespondError(c, apperrors.Validation("Missing Details"))
		return
	}

	req := doctor.AddDoctorRequest{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Password:   c.PostForm("password"),
		Speciality: c.PostForm("speciality"),
		Degree:     c.PostForm("degree"),
		Experience: c.PostForm("experience"),
		About:      c.PostForm("about"),
		Fees:       fees,
		Address:    parseAddress(c.PostForm("address")),
	}
	d, err := ah.AdminService.AddDoctor(c.Request.Context(), req, image)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Doctor Added", "doctor": d})
}

// AllDoctorsHandler handles GET /api/admin/all-doctors.
func (ah *AdminHandler) AllDoctorsHandler(c *gin.Context) {
	doctors, err := ah.DoctorService.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"doctors": doctors})
}

// ChangeAvailabilityHandler handles POST /api/admin/change-availability.
func (ah *AdminHandler) ChangeAvailabilityHandler(c *gin.Context) {
	var req struct {
		DocID string `json:"docId"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	available, err := ah.DoctorService.ChangeAvailability(c.Request.Context(), req.DocID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Availablity Changed", "available": available})
}

// AppointmentsHandler handles GET /api/admin/appointments.
func (ah *AdminHandler) AppointmentsHandler(c *gin.Context) {
	appts, err := ah.BookingService.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"appointments": appts})
}

// CancelAppointmentHandler handles POST /api/admin/cancel-appointment.
func (ah *AdminHandler) CancelAppointmentHandler(c *gin.Context) {
	var req appointmentRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	if _, err := ah.BookingService.Cancel(c.Request.Context(), ah.actor(c), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Appointment Cancelled"})
}

// CompleteAppointmentHandler handles POST /api/admin/complete-appointment.
func (ah *AdminHandler) CompleteAppointmentHandler(c *gin.Context) {
	var req appointmentRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	if _, err := ah.BookingService.Complete(c.Request.Context(), ah.actor(c), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Appointment Completed"})
}

// DashboardHandler handles GET /api/admin/dashboard.
func (ah *AdminHandler) DashboardHandler(c *gin.Context) {
	dash, err := ah.AdminService.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"dashData": dash})
}
