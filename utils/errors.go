package utils

import (
	"errors"
	"net/http"
)

// Mensajes genéricos que ve el cliente
const (
	MsgInvalidInput = "Invalid input. Please check your data and try again."
	MsgInternal     = "An unexpected error occurred. Please try again later."
)

// AppError es un error que ya sabe con qué status HTTP responder
// Los servicios devuelven AppError y el middleware de errores lo formatea
type AppError struct {
	StatusCode int
	Message    string
	Err        error // causa interna, nunca se envía al cliente
}

// Error implementa la interfaz error
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap permite usar errors.Is / errors.As con la causa
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError -> 400, datos faltantes o inválidos
func NewValidationError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

// NewConflictError -> 400, username o email duplicado
func NewConflictError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError -> 401, no hay sesión o credenciales incorrectas
func NewUnauthorizedError(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message}
}

// NewForbiddenError -> 403, token inválido o recurso ajeno
func NewForbiddenError(message string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Message: message}
}

// NewNotFoundError -> 404
func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

// NewInternalError -> 500, el mensaje siempre es genérico
func NewInternalError(err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}

// AsAppError convierte cualquier error en AppError
// Lo que no es AppError se trata como error interno
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
