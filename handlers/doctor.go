// File: clinicbook/handlers/doctor.go
package handlers

import (
	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/booking"
	"clinicbook/services/doctor"
	"clinicbook/services/prescription"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// DoctorHandler serves the doctor endpoints and the public doctor list.
type DoctorHandler struct {
	DoctorService       doctor.DoctorService
	BookingService      booking.BookingService
	PrescriptionService prescription.PrescriptionService
}

func NewDoctorHandler(ds doctor.DoctorService, bs booking.BookingService, ps prescription.PrescriptionService) *DoctorHandler {
	return &DoctorHandler{DoctorService: ds, BookingService: bs, PrescriptionService: ps}
}

func (h *DoctorHandler) doctorID(c *gin.Context) string {
	return c.GetString(middleware.CtxDoctorID)
}

// ListHandler handles GET /api/doctor/list.
func (h *DoctorHandler) ListHandler(c *gin.Context) {
	doctors, err := h.DoctorService.ListPublic(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"doctors": doctors})
}

// LoginHandler handles POST /api/doctor/login.
func (h *DoctorHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	resp, err := h.DoctorService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"token": resp.Token})
}

// AppointmentsHandler handles GET /api/doctor/appointments.
func (h *DoctorHandler) AppointmentsHandler(c *gin.Context) {
	appts, err := h.BookingService.ListForDoctor(c.Request.Context(), h.doctorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"appointments": appts})
}

// CancelAppointmentHandler handles POST /api/doctor/cancel-appointment.
func (h *DoctorHandler) CancelAppointmentHandler(c *gin.Context) {
	var req appointmentRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	if _, err := h.BookingService.Cancel(c.Request.Context(), models.DoctorActor(h.doctorID(c)), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Appointment Cancelled"})
}

// CompleteAppointmentHandler handles POST /api/doctor/complete-appointment.
func (h *DoctorHandler) CompleteAppointmentHandler(c *gin.Context) {
	var req appointmentRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	if _, err := h.BookingService.Complete(c.Request.Context(), models.DoctorActor(h.doctorID(c)), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Appointment Completed"})
}

// ChangeAvailabilityHandler handles POST /api/doctor/change-availability.
func (h *DoctorHandler) ChangeAvailabilityHandler(c *gin.Context) {
	available, err := h.DoctorService.ChangeAvailability(c.Request.Context(), h.doctorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Availablity Changed", "available": available})
}

// ProfileHandler handles GET /api/doctor/profile.
func (h *DoctorHandler) ProfileHandler(c *gin.Context) {
	profile, err := h.DoctorService.GetProfile(c.Request.Context(), h.doctorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"profileData": profile})
}

// UpdateProfileHandler handles POST /api/doctor/update-profile.
func (h *DoctorHandler) UpdateProfileHandler(c *gin.Context) {
	var update models.DoctorUpdate
	if err := bindJSON(c, &update); err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := h.DoctorService.UpdateProfile(c.Request.Context(), h.doctorID(c), update); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Profile Updated"})
}

// DashboardHandler handles GET /api/doctor/dashboard.
func (h *DoctorHandler) DashboardHandler(c *gin.Context) {
	dash, err := h.DoctorService.Dashboard(c.Request.Context(), h.doctorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"dashData": dash})
}

// AddPrescriptionHandler handles POST /api/doctor/add-prescription.
func (h *DoctorHandler) AddPrescriptionHandler(c *gin.Context) {
	var req struct {
		AppointmentID string            `json:"appointmentId"`
		Medicines     []models.Medicine `json:"medicines"`
		Notes         string            `json:"notes"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	p, err := h.PrescriptionService.AddPrescription(c.Request.Context(), h.doctorID(c), req.AppointmentID, req.Medicines, req.Notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Prescription added successfully", "prescription": p})
}

// AppointmentPrescriptionsHandler handles GET /api/doctor/prescriptions/:appointmentId.
func (h *DoctorHandler) AppointmentPrescriptionsHandler(c *gin.Context) {
	views, err := h.PrescriptionService.ListForAppointment(c.Request.Context(), h.doctorID(c), c.Param("appointmentId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"prescriptions": views})
}
