package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck maneja GET /health
// Endpoint simple para verificar que el servicio está corriendo
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "estate-api",
	})
}
