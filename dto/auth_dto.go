package dto

// SignUpRequest representa el request para registrar un usuario
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest representa el request para iniciar sesión con email y contraseña
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest son los datos que manda el frontend después del login con Google
type GoogleAuthRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}
