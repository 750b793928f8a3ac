package handlers

import (
	"MediCore/models"
	"MediCore/services"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	HospitalService *services.HospitalService
}

func NewHospitalHandler(hospitalService *services.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		HospitalService: hospitalService,
	}
}

func (h *HospitalHandler) Create(c *gin.Context) {
	var hospital models.Hospital
	if err := c.ShouldBindJSON(&hospital); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.HospitalService.Create(c.Request.Context(), &hospital); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, hospital)
}

func (h *HospitalHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	hospital, err := h.HospitalService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, hospital)
}

func (h *HospitalHandler) List(c *gin.Context) {
	hospitals, err := h.HospitalService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, hospitals)
}

func (h *HospitalHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var hospital models.Hospital
	if err := c.ShouldBindJSON(&hospital); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	hospital.ID = id

	if err := h.HospitalService.Update(c.Request.Context(), &hospital); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, hospital)
}
