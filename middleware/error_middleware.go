package middleware

import (
	"log"
	"net/http"

	"estate-api/dto"
	"estate-api/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler es el único lugar donde se escriben las respuestas de error
// Los controllers hacen c.Error(err) y retornan
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := utils.AsAppError(c.Errors.Last().Err)
		if appErr.StatusCode >= http.StatusInternalServerError {
			// El detalle queda en el log, al cliente le llega el mensaje genérico
			log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
		}

		c.JSON(appErr.StatusCode, dto.ErrorResponse{
			Success:    false,
			StatusCode: appErr.StatusCode,
			Message:    appErr.Message,
		})
	}
}

// NotFound responde a las rutas que no existen
func NotFound(c *gin.Context) {
	c.Error(utils.NewNotFoundError("Route not found"))
}
