// File: clinicbook/handlers/user.go
package handlers

import (
	"clinicbook/config"
	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/booking"
	"clinicbook/services/prescription"
	"clinicbook/services/user"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the patient endpoints.
type UserHandler struct {
	UserService         user.UserService
	BookingService      booking.BookingService
	PrescriptionService prescription.PrescriptionService
}

func NewUserHandler(us user.UserService, bs booking.BookingService, ps prescription.PrescriptionService) *UserHandler {
	return &UserHandler{UserService: us, BookingService: bs, PrescriptionService: ps}
}

// RegisterHandler handles POST /api/user/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req user.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"token": resp.Token})
}

// LoginHandler handles POST /api/user/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"token": resp.Token})
}

// ForgotPasswordHandler handles POST /api/user/forgot-password.
func (h *UserHandler) ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	link, err := h.UserService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	payload := gin.H{"message": "Password reset link sent to your email"}
	if !config.IsProduction() {
		payload["resetUrl"] = link
	}
	utils.RespondOK(c, payload)
}

// ResetPasswordHandler handles POST /api/user/reset-password.
func (h *UserHandler) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := h.UserService.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Password reset successful"})
}

// GetProfileHandler handles GET /api/user/get-profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	u, err := h.UserService.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"userData": u})
}

// UpdateProfileHandler handles POST /api/user/update-profile (multipart form).
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	image, closeImage, err := formImage(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer closeImage()

	update := models.ProfileUpdate{
		Name:             c.PostForm("name"),
		Phone:            c.PostForm("phone"),
		Address:          parseAddress(c.PostForm("address")),
		DOB:              c.PostForm("dob"),
		Gender:           c.PostForm("gender"),
		Age:              c.PostForm("age"),
		EmergencyContact: c.PostForm("econtact"),
		PreMedical:       c.PostForm("premedical"),
		Allergy:          c.PostForm("allergy"),
		Blood:            c.PostForm("blood"),
	}
	if _, err := h.UserService.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserID), update, image); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Profile Updated"})
}

// BookAppointmentHandler handles POST /api/user/book-appointment.
func (h *UserHandler) BookAppointmentHandler(c *gin.Context) {
	var req struct {
		DocID    string `json:"docId"`
		SlotDate string `json:"slotDate"`
		SlotTime string `json:"slotTime"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	appt, err := h.BookingService.Book(c.Request.Context(), c.GetString(middleware.CtxUserID), req.DocID, req.SlotDate, req.SlotTime)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Appointment Booked", "appointment": appt})
}

// CancelAppointmentHandler handles POST /api/user/cancel-appointment.
func (h *UserHandler) CancelAppointmentHandler(c *gin.Context) {
	var req appointmentRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	actor := models.PatientActor(c.GetString(middleware.CtxUserID))
	if _, err := h.BookingService.Cancel(c.Request.Context(), actor, req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Appointment Cancelled"})
}

// ListAppointmentsHandler handles GET|POST /api/user/appointments.
func (h *UserHandler) ListAppointmentsHandler(c *gin.Context) {
	appts, err := h.BookingService.ListForPatient(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"appointments": appts})
}

// PaymentStatusHandler handles POST /api/user/payment-status.
func (h *UserHandler) PaymentStatusHandler(c *gin.Context) {
	var req appointmentRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	if _, err := h.BookingService.MarkPaid(c.Request.Context(), c.GetString(middleware.CtxUserID), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Payment Successful"})
}

// ListPrescriptionsHandler handles GET /api/user/prescriptions.
func (h *UserHandler) ListPrescriptionsHandler(c *gin.Context) {
	views, err := h.PrescriptionService.ListForPatient(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"prescriptions": views})
}
