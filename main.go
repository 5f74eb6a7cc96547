// File: clinicbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/database"
	appointmentRepo "clinicbook/database/repository/appointment"
	doctorRepo "clinicbook/database/repository/doctor"
	memoryRepo "clinicbook/database/repository/memory"
	prescriptionRepo "clinicbook/database/repository/prescription"
	userRepoPkg "clinicbook/database/repository/user"
	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/booking"
	"clinicbook/services/doctor"
	"clinicbook/services/prescription"
	"clinicbook/services/storage"
	"clinicbook/services/user"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type repositories struct {
	users         userRepoPkg.UserRepository
	doctors       doctorRepo.DoctorRepository
	appointments  appointmentRepo.AppointmentRepository
	prescriptions prescriptionRepo.PrescriptionRepository
}

func openRepositories(logger *zap.Logger) repositories {
	if config.AppConfig.Store == "memory" {
		logger.Warn("STORE=memory: data lives in process memory and is lost on restart")
		store := memoryRepo.NewStore()
		return repositories{
			users:         store.Users(),
			doctors:       store.Doctors(),
			appointments:  store.Appointments(),
			prescriptions: store.Prescriptions(),
		}
	}

	database.InitDB()
	return repositories{
		users:         userRepoPkg.NewMongoUserRepo(),
		doctors:       doctorRepo.NewMongoDoctorRepo(),
		appointments:  appointmentRepo.NewMongoAppointmentRepo(),
		prescriptions: prescriptionRepo.NewMongoPrescriptionRepo(),
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.AppConfig.JWTSecret == "" {
		if config.IsProduction() {
			logger.Fatal("JWT_SECRET must be set in production")
		}
		logger.Warn("JWT_SECRET not set, using development secret")
	}

	repos := openRepositories(logger)
	utils.InitCache()
	utils.InitAuthCache()

	uploader, err := storage.NewFromConfig()
	if err != nil {
		logger.Fatal("main: failed to initialize image storage", zap.Error(err))
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(config.TrustedProxyList()); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// services.
	listCache := doctor.NewListCache(utils.GetCacheClient(), time.Duration(config.AppConfig.DoctorListTTLSeconds)*time.Second)
	bookingService := booking.NewBookingService(repos.doctors, repos.users, repos.appointments, listCache)
	prescriptionService := prescription.NewPrescriptionService(repos.prescriptions, repos.appointments, repos.doctors)
	userService := user.NewUserService(repos.users, uploader, config.AppConfig.FrontendURL)
	doctorService := doctor.NewDoctorService(repos.doctors, repos.appointments, listCache)
	adminService := doctor.NewAdminService(
		repos.doctors, repos.users, repos.appointments, uploader, listCache,
		config.AppConfig.AdminEmail, config.AppConfig.AdminPassword,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:   repos.users,
		DoctorRepo: repos.doctors,
		AuthCache:  utils.GetAuthCacheClient(),
		User:       handlers.NewUserHandler(userService, bookingService, prescriptionService),
		Doctor:     handlers.NewDoctorHandler(doctorService, bookingService, prescriptionService),
		Admin:      handlers.NewAdminHandler(adminService, doctorService, bookingService),
	}
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.FrontendURL)

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
