package repositories

import (
	"context"

	"estate-api/domain"
)

// UserRepository define la interfaz del repositorio de usuarios
// Es como un "contrato" que dice qué operaciones debe tener
// Hay una implementación para Mongo y otra para MySQL (GORM)
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
