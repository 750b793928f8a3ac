package handlers

import (
	"MediCore/services"

	"github.com/gin-gonic/gin"
)

type PrescriptionHandler struct {
	PrescriptionService *services.PrescriptionService
}

func NewPrescriptionHandler(prescriptionService *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{
		PrescriptionService: prescriptionService,
	}
}

// Issue records a prescription for one of the doctor's appointments.
func (h *PrescriptionHandler) Issue(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req services.PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	prescription, err := h.PrescriptionService.Issue(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(201, prescription)
}

// Mine lists the patient's own prescriptions.
func (h *PrescriptionHandler) Mine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	prescriptions, err := h.PrescriptionService.ForPatient(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, prescriptions)
}

// Issued lists prescriptions the doctor has written.
func (h *PrescriptionHandler) Issued(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	prescriptions, err := h.PrescriptionService.ForDoctor(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, prescriptions)
}
