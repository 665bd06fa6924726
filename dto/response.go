package dto

// ErrorResponse es el formato único de todos los errores de la API
type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// MessageResponse es una respuesta exitosa sin datos
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
