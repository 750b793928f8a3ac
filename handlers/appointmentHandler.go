package handlers

import (
	"MediCore/models"
	"MediCore/services"
	"context"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	AppointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		AppointmentService: appointmentService,
	}
}

// Book creates a pending appointment for a patient or a receptionist walk-in.
func (h *AppointmentHandler) Book(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.AppointmentService.Book(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(201, appointment)
}

// Confirm moves a pending appointment to confirmed.
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.AppointmentService.Confirm)
}

// Complete marks a confirmed appointment as completed.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.AppointmentService.Complete)
}

// Cancel cancels a pending or confirmed appointment and frees its slot.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.AppointmentService.Cancel)
}

// MarkNoShow flags a confirmed appointment the patient missed.
func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.AppointmentService.MarkNoShow)
}

// PendingQueue lists pending appointments for the receptionist's hospital.
func (h *AppointmentHandler) PendingQueue(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	appointments, err := h.AppointmentService.PendingQueue(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, appointments)
}

// Today lists the doctor's confirmed appointments for today.
func (h *AppointmentHandler) Today(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	appointments, err := h.AppointmentService.TodayForDoctor(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, appointments)
}

// MyAppointments lists the patient's own appointment history.
func (h *AppointmentHandler) MyAppointments(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	appointments, err := h.AppointmentService.ForPatient(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, appointments)
}

// Get returns one appointment, scoped to the caller's role.
func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.AppointmentService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, appointment)
}

type transitionFunc func(ctx context.Context, actor services.Actor, appointmentID uint) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionFunc) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	appointment, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, appointment)
}
