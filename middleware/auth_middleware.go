package middleware

import (
	"estate-api/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookie es el nombre de la cookie donde viaja el token
const SessionCookie = "access_token"

// userIDKey es la clave del contexto de gin donde guardamos el usuario
const userIDKey = "user_id"

// VerifyUser valida el token de la cookie en cada request protegido
// Sin cookie -> 401. Token inválido o vencido -> 403
func VerifyUser(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Leer la cookie
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Error(utils.NewUnauthorizedError("Unauthorized"))
			c.Abort() // Detiene la ejecución
			return
		}

		// 2. Validar firma y vencimiento
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.Error(utils.NewForbiddenError("Forbidden"))
			c.Abort()
			return
		}

		// 3. Guardar el id del usuario en el contexto
		// Así los endpoints pueden saber quién hizo la request
		c.Set(userIDKey, claims.ID)

		c.Next() // Continúa con el endpoint
	}
}

// UserID devuelve el id del usuario autenticado ("" si no hay)
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
