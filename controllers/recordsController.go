package controllers

import (
	"MediCore/handlers"
	"MediCore/middlewares"
	"MediCore/models"

	"github.com/gin-gonic/gin"
)

// SetupRecordsRoutes registers prescription, lab report, notification and
// dashboard routes.
func SetupRecordsRoutes(
	router *gin.Engine,
	prescriptionHandler *handlers.PrescriptionHandler,
	labReportHandler *handlers.LabReportHandler,
	notificationHandler *handlers.NotificationHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	prescriptions := router.Group("/prescriptions").Use(middlewares.TokenAuthMiddleware())
	{
		prescriptions.POST("",
			middlewares.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.Issue)
		prescriptions.GET("/issued",
			middlewares.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.Issued)
		prescriptions.GET("/mine",
			middlewares.RoleAuthMiddleware(models.RolePatient), prescriptionHandler.Mine)
	}

	labReports := router.Group("/lab-reports").Use(middlewares.TokenAuthMiddleware())
	{
		labReports.POST("",
			middlewares.RoleAuthMiddleware(models.RoleLab), labReportHandler.Upload)
		labReports.GET("/uploaded",
			middlewares.RoleAuthMiddleware(models.RoleLab), labReportHandler.Uploaded)
		labReports.GET("/mine",
			middlewares.RoleAuthMiddleware(models.RolePatient), labReportHandler.Mine)
	}

	notifications := router.Group("/notifications").Use(middlewares.TokenAuthMiddleware())
	{
		notifications.GET("", notificationHandler.List)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
	}

	dashboards := router.Group("/dashboards").Use(middlewares.TokenAuthMiddleware())
	{
		dashboards.GET("/admin",
			middlewares.RoleAuthMiddleware(models.RoleAdmin), dashboardHandler.Admin)
		dashboards.GET("/doctor",
			middlewares.RoleAuthMiddleware(models.RoleDoctor), dashboardHandler.Doctor)
		dashboards.GET("/receptionist",
			middlewares.RoleAuthMiddleware(models.RoleReceptionist), dashboardHandler.Receptionist)
		dashboards.GET("/patient",
			middlewares.RoleAuthMiddleware(models.RolePatient), dashboardHandler.Patient)
		dashboards.GET("/lab",
			middlewares.RoleAuthMiddleware(models.RoleLab), dashboardHandler.Lab)
	}
}
