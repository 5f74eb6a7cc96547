package routes

import (
	"net/http"
	"strings"
	"time"

	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers patient endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/user")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)
		api.POST("/forgot-password", hb.User.ForgotPasswordHandler)
		api.POST("/reset-password", hb.User.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
		protected.GET("/get-profile", hb.User.GetProfileHandler)
		protected.POST("/update-profile", hb.User.UpdateProfileHandler)
		protected.POST("/book-appointment", hb.User.BookAppointmentHandler)
		protected.POST("/cancel-appointment", hb.User.CancelAppointmentHandler)
		protected.GET("/appointments", hb.User.ListAppointmentsHandler)
		protected.POST("/appointments", hb.User.ListAppointmentsHandler)
		protected.POST("/payment-status", hb.User.PaymentStatusHandler)
		protected.GET("/prescriptions", hb.User.ListPrescriptionsHandler)
	}
}

// RegisterDoctorRoutes registers doctor endpoints and the public doctor list.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctor")
	{
		api.GET("/list", hb.Doctor.ListHandler)
		api.POST("/login", hb.Doctor.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo, hb.AuthCache))
		protected.GET("/appointments", hb.Doctor.AppointmentsHandler)
		protected.POST("/cancel-appointment", hb.Doctor.CancelAppointmentHandler)
		protected.POST("/complete-appointment", hb.Doctor.CompleteAppointmentHandler)
		protected.POST("/change-availability", hb.Doctor.ChangeAvailabilityHandler)
		protected.GET("/profile", hb.Doctor.ProfileHandler)
		protected.POST("/update-profile", hb.Doctor.UpdateProfileHandler)
		protected.GET("/dashboard", hb.Doctor.DashboardHandler)
		protected.POST("/add-prescription", hb.Doctor.AddPrescriptionHandler)
		protected.GET("/prescriptions/:appointmentId", hb.Doctor.AppointmentPrescriptionsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.Admin.LoginHandler)

		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.POST("/add-doctor", hb.Admin.AddDoctorHandler)
		protected.GET("/all-doctors", hb.Admin.AllDoctorsHandler)
		protected.POST("/change-availability", hb.Admin.ChangeAvailabilityHandler)
		protected.GET("/appointments", hb.Admin.AppointmentsHandler)
		protected.POST("/cancel-appointment", hb.Admin.CancelAppointmentHandler)
		protected.POST("/complete-appointment", hb.Admin.CompleteAppointmentHandler)
		protected.GET("/dashboard", hb.Admin.DashboardHandler)
	}
}

// RegisterHealthRoute registers the liveness and dependency health endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Working")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

func allowedOrigins(frontendURL string) []string {
	var origins []string
	for _, o := range strings.Split(frontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, frontendURL string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(frontendURL),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
