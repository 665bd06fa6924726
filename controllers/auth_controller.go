package controllers

import (
	"net/http"
	"time"

	"estate-api/dto"
	"estate-api/middleware"
	"estate-api/services"
	"estate-api/utils"

	"github.com/gin-gonic/gin"
)

// AuthController maneja los endpoints de /api/auth
type AuthController struct {
	service      services.AuthService
	secureCookie bool
}

// NewAuthController crea una nueva instancia del controlador
// secureCookie se activa en producción (cookie solo por HTTPS)
func NewAuthController(service services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{service: service, secureCookie: secureCookie}
}

// SignUp maneja POST /api/auth/signup
func (ctrl *AuthController) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.NewValidationError(utils.MsgInvalidInput))
		return
	}

	if err := ctrl.service.SignUp(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	// Status 201 = Created, no se devuelve token
	c.JSON(http.StatusCreated, dto.MessageResponse{
		Success: true,
		Message: "User registered successfully!",
	})
}

// SignIn maneja POST /api/auth/signin
func (ctrl *AuthController) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.NewValidationError(utils.MsgInvalidInput))
		return
	}

	result, err := ctrl.service.SignIn(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	setSessionCookie(c, result.Token, result.TTL, ctrl.secureCookie)
	c.JSON(http.StatusOK, result.User)
}

// Google maneja POST /api/auth/google
func (ctrl *AuthController) Google(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.NewValidationError(utils.MsgInvalidInput))
		return
	}

	result, err := ctrl.service.Google(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	setSessionCookie(c, result.Token, result.TTL, ctrl.secureCookie)
	c.JSON(http.StatusOK, result.User)
}

// SignOut maneja POST /api/auth/signout
// Siempre responde 200, haya o no sesión
func (ctrl *AuthController) SignOut(c *gin.Context) {
	clearSessionCookie(c, ctrl.secureCookie)
	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "User has been logged out!",
	})
}

// setSessionCookie guarda el token en una cookie HTTP-only y SameSite=Strict
func setSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// clearSessionCookie borra la cookie de sesión (MaxAge negativo)
func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true)
}
