package handlers

import (
	"MediCore/middlewares"
	"MediCore/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// currentActor resolves the authenticated caller from the request context.
// It writes the 401 response itself when the context carries no identity.
func currentActor(c *gin.Context) (services.Actor, bool) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "User not found in context"})
		return services.Actor{}, false
	}
	role, err := middlewares.ExtractUserRoleFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "User role not found in context"})
		return services.Actor{}, false
	}
	return services.Actor{UserID: userID, Role: role}, true
}

// pathID parses a numeric path parameter, writing the 400 response on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrHospitalNotFound),
		errors.Is(err, services.ErrPatientNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotReceptionist),
		errors.Is(err, services.ErrLabNotFound),
		errors.Is(err, services.ErrWrongHospital),
		errors.Is(err, services.ErrNotAppointmentOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrNotConfirmed),
		errors.Is(err, services.ErrInvalidSlot),
		errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidOtp):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &validation.Errors{}):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
