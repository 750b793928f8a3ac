package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthHandler reports service liveness.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoute sets up the root and health routes.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "MediCore API")
	})
	router.GET("/health", healthHandler)
}
