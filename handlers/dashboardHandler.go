package handlers

import (
	"MediCore/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	DashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		DashboardService: dashboardService,
	}
}

// Admin summarizes one hospital's activity for administrators.
func (h *DashboardHandler) Admin(c *gin.Context) {
	hospitalID, err := strconv.ParseUint(c.Query("hospital_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "hospital_id query parameter is required"})
		return
	}

	summary, svcErr := h.DashboardService.ForAdmin(c.Request.Context(), uint(hospitalID))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(200, summary)
}

// Doctor summarizes the caller's own schedule.
func (h *DashboardHandler) Doctor(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	summary, err := h.DashboardService.ForDoctor(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, summary)
}

// Receptionist summarizes the caller's hospital queue.
func (h *DashboardHandler) Receptionist(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	summary, err := h.DashboardService.ForReceptionist(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, summary)
}

// Patient summarizes the caller's own records.
func (h *DashboardHandler) Patient(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	summary, err := h.DashboardService.ForPatient(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, summary)
}

// Lab summarizes the caller's uploads.
func (h *DashboardHandler) Lab(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	summary, err := h.DashboardService.ForLab(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, summary)
}
