package handlers

import (
	"MediCore/models"
	"MediCore/services"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	PatientService *services.PatientService
}

func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{
		PatientService: patientService,
	}
}

func (h *PatientHandler) Create(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.PatientService.Create(c.Request.Context(), &patient); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(201, patient)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	patient, err := h.PatientService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, patient)
}

// Me returns the patient record belonging to the authenticated user.
func (h *PatientHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	patient, err := h.PatientService.GetByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.PatientService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	patient.ID = id

	if err := h.PatientService.Update(c.Request.Context(), &patient); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(200, patient)
}
