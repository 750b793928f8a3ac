package controllers

import (
	"MediCore/handlers"
	"MediCore/middlewares"
	"MediCore/models"

	"github.com/gin-gonic/gin"
)

// SetupRegistryRoutes registers hospital, doctor, patient and staff routes.
func SetupRegistryRoutes(
	router *gin.Engine,
	hospitalHandler *handlers.HospitalHandler,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	staffHandler *handlers.StaffHandler,
) {
	// Hospitals and doctors are browsable without authentication.
	router.GET("/hospitals", hospitalHandler.List)
	router.GET("/hospitals/:id", hospitalHandler.Get)
	router.GET("/doctors", doctorHandler.List)
	router.GET("/doctors/:id", doctorHandler.Get)

	admin := router.Group("").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleAdmin),
	)
	{
		admin.POST("/hospitals", hospitalHandler.Create)
		admin.PUT("/hospitals/:id", hospitalHandler.Update)
		admin.POST("/doctors", doctorHandler.Create)
		admin.PUT("/doctors/:id", doctorHandler.Update)
		admin.POST("/receptionists", staffHandler.CreateReceptionist)
		admin.GET("/receptionists", staffHandler.ListReceptionists)
		admin.POST("/labs", staffHandler.CreateLab)
		admin.GET("/labs", staffHandler.ListLabs)
	}

	patients := router.Group("/patients").Use(middlewares.TokenAuthMiddleware())
	{
		patients.POST("",
			middlewares.RoleAuthMiddleware(models.RolePatient, models.RoleReceptionist), patientHandler.Create)
		patients.GET("/me",
			middlewares.RoleAuthMiddleware(models.RolePatient), patientHandler.Me)
		patients.GET("",
			middlewares.RoleAuthMiddleware(models.RoleAdmin, models.RoleReceptionist), patientHandler.List)
		patients.GET("/:id",
			middlewares.RoleAuthMiddleware(models.RoleAdmin, models.RoleReceptionist, models.RoleDoctor), patientHandler.Get)
		patients.PUT("/:id",
			middlewares.RoleAuthMiddleware(models.RoleAdmin, models.RoleReceptionist), patientHandler.Update)
	}
}
