package middleware

import (
	"log"
	"net/http"

	"estate-api/dto"
	"estate-api/utils"

	"github.com/gin-gonic/gin"
)

// Recovery reemplaza a gin.Recovery para que un panic también
// responda con el formato de error de la API
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("❌ panic in %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)

		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success:    false,
			StatusCode: http.StatusInternalServerError,
			Message:    utils.MsgInternal,
		})
	})
}
