package controllers

import (
	"MediCore/handlers"
	"MediCore/middlewares"
	"MediCore/models"

	"github.com/gin-gonic/gin"
)

// SetupAppointmentRoutes registers appointment booking, lifecycle and
// availability routes.
func SetupAppointmentRoutes(router *gin.Engine, appointmentHandler *handlers.AppointmentHandler, scheduleHandler *handlers.ScheduleHandler) {
	// Availability is public so patients can browse slots before logging in.
	router.GET("/doctors/:id/availability", scheduleHandler.Availability)

	appointments := router.Group("/appointments").Use(middlewares.TokenAuthMiddleware())
	{
		appointments.POST("", appointmentHandler.Book)
		appointments.GET("/:id", appointmentHandler.Get)
		appointments.POST("/:id/cancel", appointmentHandler.Cancel)
		appointments.GET("/mine",
			middlewares.RoleAuthMiddleware(models.RolePatient), appointmentHandler.MyAppointments)
		appointments.POST("/:id/confirm",
			middlewares.RoleAuthMiddleware(models.RoleReceptionist), appointmentHandler.Confirm)
		appointments.POST("/:id/no-show",
			middlewares.RoleAuthMiddleware(models.RoleReceptionist), appointmentHandler.MarkNoShow)
		appointments.GET("/pending",
			middlewares.RoleAuthMiddleware(models.RoleReceptionist), appointmentHandler.PendingQueue)
		appointments.POST("/:id/complete",
			middlewares.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.Complete)
		appointments.GET("/today",
			middlewares.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.Today)
	}

	router.PUT("/doctors/:id/schedule",
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin),
		scheduleHandler.SetSchedule)
}
