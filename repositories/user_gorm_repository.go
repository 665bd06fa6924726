package repositories

import (
	"context"
	"errors"

	"estate-api/domain"

	"gorm.io/gorm"
)

// userGormRepository es la implementación de UserRepository sobre MySQL
type userGormRepository struct {
	db *gorm.DB
}

// NewUserGormRepository crea una nueva instancia del repositorio
func NewUserGormRepository(db *gorm.DB) UserRepository {
	return &userGormRepository{db: db}
}

// Create inserta un nuevo usuario (GORM hace el INSERT y completa los timestamps)
func (r *userGormRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	return translateGormError(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID -> SELECT * FROM users WHERE id = ?
func (r *userGormRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByUsername -> SELECT * FROM users WHERE username = ?
func (r *userGormRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByEmail -> SELECT * FROM users WHERE email = ?
func (r *userGormRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// Update guarda todos los campos del usuario
func (r *userGormRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Model(user).
		Select("username", "email", "password", "avatar", "updated_at").
		Updates(user)
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete -> DELETE FROM users WHERE id = ?
func (r *userGormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userGormRepository) first(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

// translateGormError convierte los errores de GORM en los errores del paquete
func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
