package dto

// UpdateUserRequest representa el request para actualizar un usuario
// Todos los campos son opcionales: nil significa "no tocar"
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Password *string `json:"password,omitempty"`
}
