package routes

import (
	"MediCore/cache"
	"MediCore/config"
	"MediCore/controllers"
	"MediCore/handlers"
	"MediCore/middlewares"
	"MediCore/repositories"
	"MediCore/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, cache)
	hospitalRepo := repositories.NewHospitalRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(db, cache)
	staffRepo := repositories.NewStaffRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db, cache)
	prescriptionRepo := repositories.NewPrescriptionRepository(db)
	labReportRepo := repositories.NewLabReportRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, cache)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	scheduleService := services.NewScheduleService(doctorRepo, appointmentRepo)
	appointmentService := services.NewAppointmentService(
		appointmentRepo, doctorRepo, patientRepo, hospitalRepo, staffRepo,
		scheduleService, notificationService,
	)
	hospitalService := services.NewHospitalService(hospitalRepo)
	doctorService := services.NewDoctorService(doctorRepo, hospitalRepo)
	patientService := services.NewPatientService(patientRepo)
	staffService := services.NewStaffService(staffRepo, hospitalRepo)
	prescriptionService := services.NewPrescriptionService(
		prescriptionRepo, appointmentRepo, doctorRepo, patientRepo, notificationService,
	)
	labReportService := services.NewLabReportService(
		labReportRepo, appointmentRepo, patientRepo, staffRepo, notificationService,
	)
	dashboardService := services.NewDashboardService(
		appointmentRepo, prescriptionRepo, labReportRepo, doctorRepo, patientRepo, staffRepo,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, doctorService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	staffHandler := handlers.NewStaffHandler(staffService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)
	labReportHandler := handlers.NewLabReportHandler(labReportService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Register routes
	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupAppointmentRoutes(router, appointmentHandler, scheduleHandler)
	controllers.SetupRegistryRoutes(router, hospitalHandler, doctorHandler, patientHandler, staffHandler)
	controllers.SetupRecordsRoutes(router, prescriptionHandler, labReportHandler, notificationHandler, dashboardHandler)
	controllers.SetupRootRoute(router)

	return router
}
