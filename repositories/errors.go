package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errores que devuelven todas las implementaciones de los repositorios
// Los servicios los traducen a errores HTTP
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// newID genera un id nuevo con el mismo formato en Mongo y en MySQL
func newID() string {
	return primitive.NewObjectID().Hex()
}
