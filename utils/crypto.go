package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost es el costo de bcrypt que usamos para todas las contraseñas
const PasswordCost = 12

// HashPassword hashea una contraseña usando bcrypt
// Recibe: "mipassword123"
// Devuelve: "$2a$12$..."
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// CheckPasswordHash verifica si una contraseña coincide con el hash
// Devuelve true si coincide, false si no
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
