package controllers

import (
	"errors"
	"io"
	"net/http"

	"estate-api/dto"
	"estate-api/middleware"
	"estate-api/services"
	"estate-api/utils"

	"github.com/gin-gonic/gin"
)

// UserController maneja los endpoints de /api/user
type UserController struct {
	service      services.UserService
	secureCookie bool
}

// NewUserController crea una nueva instancia del controlador
func NewUserController(service services.UserService, secureCookie bool) *UserController {
	return &UserController{service: service, secureCookie: secureCookie}
}

// GetUser maneja GET /api/user/:id
// Devuelve el dueño de una publicación para poder contactarlo
func (ctrl *UserController) GetUser(c *gin.Context) {
	user, err := ctrl.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser maneja PUT /api/user/:id
// Solo el propio usuario puede actualizarse
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(utils.NewValidationError(utils.MsgInvalidInput))
		return
	}

	user, err := ctrl.service.UpdateUser(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser maneja DELETE /api/user/:id
// Borra la cuenta, sus publicaciones y la cookie de sesión
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	if err := ctrl.service.DeleteUser(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.Error(err)
		return
	}

	clearSessionCookie(c, ctrl.secureCookie)
	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "User has been deleted!",
	})
}
