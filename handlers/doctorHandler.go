package handlers

import (
	"MediCore/models"
	"MediCore/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	DoctorService *services.DoctorService
}

func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{
		DoctorService: doctorService,
	}
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.DoctorService.Create(c.Request.Context(), &doctor); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, doctor)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.DoctorService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, doctor)
}

// List returns doctors, optionally filtered by hospital_id.
func (h *DoctorHandler) List(c *gin.Context) {
	var hospitalID uint
	if raw := c.Query("hospital_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hospital_id"})
			return
		}
		hospitalID = uint(parsed)
	}

	doctors, err := h.DoctorService.List(c.Request.Context(), hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, doctors)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	doctor.ID = id

	if err := h.DoctorService.Update(c.Request.Context(), &doctor); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, doctor)
}
