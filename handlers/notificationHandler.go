package handlers

import (
	"MediCore/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	NotificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		NotificationService: notificationService,
	}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	notifications, err := h.NotificationService.List(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(200, notifications)
}

// MarkRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.NotificationService.MarkRead(c.Request.Context(), id, actor.UserID); err != nil {
		c.JSON(404, gin.H{"error": "Notification not found"})
		return
	}

	c.Status(200)
}
