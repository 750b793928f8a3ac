package handlers

import (
	"MediCore/models"
	"MediCore/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StaffHandler manages receptionist and lab records.
type StaffHandler struct {
	StaffService *services.StaffService
}

func NewStaffHandler(staffService *services.StaffService) *StaffHandler {
	return &StaffHandler{
		StaffService: staffService,
	}
}

func (h *StaffHandler) CreateReceptionist(c *gin.Context) {
	var receptionist models.Receptionist
	if err := c.ShouldBindJSON(&receptionist); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.StaffService.CreateReceptionist(c.Request.Context(), &receptionist); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, receptionist)
}

func (h *StaffHandler) ListReceptionists(c *gin.Context) {
	hospitalID, ok := hospitalQuery(c)
	if !ok {
		return
	}

	receptionists, err := h.StaffService.ListReceptionists(c.Request.Context(), hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, receptionists)
}

func (h *StaffHandler) CreateLab(c *gin.Context) {
	var lab models.Lab
	if err := c.ShouldBindJSON(&lab); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.StaffService.CreateLab(c.Request.Context(), &lab); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, lab)
}

func (h *StaffHandler) ListLabs(c *gin.Context) {
	hospitalID, ok := hospitalQuery(c)
	if !ok {
		return
	}

	labs, err := h.StaffService.ListLabs(c.Request.Context(), hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, labs)
}

func hospitalQuery(c *gin.Context) (uint, bool) {
	hospitalID, err := strconv.ParseUint(c.Query("hospital_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "hospital_id query parameter is required"})
		return 0, false
	}
	return uint(hospitalID), true
}
