package handlers

import (
	"MediCore/services"

	"github.com/gin-gonic/gin"
)

type LabReportHandler struct {
	LabReportService *services.LabReportService
}

func NewLabReportHandler(labReportService *services.LabReportService) *LabReportHandler {
	return &LabReportHandler{
		LabReportService: labReportService,
	}
}

// Upload records a lab report and notifies the patient.
func (h *LabReportHandler) Upload(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req services.LabReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.LabReportService.Upload(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(201, report)
}

// Mine lists the patient's own lab reports.
func (h *LabReportHandler) Mine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	reports, err := h.LabReportService.ForPatient(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, reports)
}

// Uploaded lists reports the caller's lab has produced.
func (h *LabReportHandler) Uploaded(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	reports, err := h.LabReportService.ForLab(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, reports)
}
