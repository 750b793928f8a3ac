package handlers

import (
	"MediCore/models"
	"MediCore/services"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	ScheduleService *services.ScheduleService
	DoctorService   *services.DoctorService
}

func NewScheduleHandler(scheduleService *services.ScheduleService, doctorService *services.DoctorService) *ScheduleHandler {
	return &ScheduleHandler{
		ScheduleService: scheduleService,
		DoctorService:   doctorService,
	}
}

// Availability lists the doctor's slots for a date with their booked state.
func (h *ScheduleHandler) Availability(c *gin.Context) {
	doctorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(400, gin.H{"error": "date query parameter is required"})
		return
	}

	slots, err := h.ScheduleService.Availability(c.Request.Context(), doctorID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"doctor_id": doctorID,
		"date":      date,
		"slots":     slots,
	})
}

// SetSchedule creates or replaces the caller's working-hours record. Admins
// may set any doctor's schedule; doctors only their own.
func (h *ScheduleHandler) SetSchedule(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	doctorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.DoctorService.Get(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if actor.Role != models.RoleAdmin && doctor.UserID != actor.UserID {
		c.JSON(403, gin.H{"error": "Schedule belongs to a different doctor"})
		return
	}

	var schedule models.DoctorSchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	schedule.DoctorID = doctorID

	if err := h.ScheduleService.SetSchedule(c.Request.Context(), &schedule); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, schedule)
}
