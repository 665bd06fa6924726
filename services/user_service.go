package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/repositories"
	"estate-api/utils"
)

// UserService define la interfaz del servicio de usuarios
type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id, requesterID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id, requesterID string) error
}

// userService es la implementación real del servicio
type userService struct {
	repo     repositories.UserRepository
	listings ListingService
}

// NewUserService crea una nueva instancia del servicio
// Necesita el servicio de publicaciones para borrar las del usuario
func NewUserService(repo repositories.UserRepository, listings ListingService) UserService {
	return &userService{repo: repo, listings: listings}
}

// GetUser obtiene un usuario por su ID
// Se usa para contactar al dueño de una publicación
func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewNotFoundError("User not found!")
		}
		return nil, utils.NewInternalError(err)
	}
	return user, nil
}

// UpdateUser actualiza los datos del propio usuario
// Solo se tocan los campos que vienen en el request
func (s *userService) UpdateUser(ctx context.Context, id, requesterID string, req dto.UpdateUserRequest) (*domain.User, error) {
	// 1. Solo el propio usuario puede actualizarse
	if id != requesterID {
		return nil, utils.NewUnauthorizedError("You can only update your own account!")
	}

	// 2. Verificar que el usuario existe
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Username nuevo: validar y verificar que no lo use otro
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if len(username) < 3 {
			return nil, utils.NewValidationError("Username must be at least 3 characters long")
		}
		if username != user.Username {
			if err := s.ensureFree(s.repo.GetByUsername(ctx, username)); err != nil {
				if errors.Is(err, errTaken) {
					return nil, utils.NewConflictError("Username already exists. Please choose another.")
				}
				return nil, err
			}
			user.Username = username
		}
	}

	// 4. Email nuevo: lo mismo
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !emailPattern.MatchString(email) {
			return nil, utils.NewValidationError("Please use a valid email address")
		}
		if email != user.Email {
			if err := s.ensureFree(s.repo.GetByEmail(ctx, email)); err != nil {
				if errors.Is(err, errTaken) {
					return nil, utils.NewConflictError("Email already exists. Please use a different email.")
				}
				return nil, err
			}
			user.Email = email
		}
	}

	if req.Avatar != nil {
		user.Avatar = strings.TrimSpace(*req.Avatar)
		if user.Avatar == "" {
			user.Avatar = domain.DefaultAvatar
		}
	}

	// 5. Si se proporciona una nueva contraseña, hashearla
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, utils.NewValidationError("Password must be at least 6 characters long")
		}
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, utils.NewInternalError(err)
		}
		user.Password = hashedPassword
	}

	// 6. Guardar los cambios
	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, utils.NewNotFoundError("User not found!")
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, utils.NewConflictError("Username or email already exists.")
		default:
			return nil, utils.NewInternalError(err)
		}
	}

	return user, nil
}

// DeleteUser elimina la cuenta del usuario y todas sus publicaciones
func (s *userService) DeleteUser(ctx context.Context, id, requesterID string) error {
	if id != requesterID {
		return utils.NewUnauthorizedError("You can only delete your own account!")
	}

	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	// 1. Primero la cuenta: si falla, sus publicaciones quedan intactas
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NewNotFoundError("User not found!")
		}
		return utils.NewInternalError(err)
	}

	// 2. Después las publicaciones del usuario
	if err := s.listings.DeleteAllForOwner(ctx, id); err != nil {
		log.Printf("DeleteUser: user=%s deleted but removing their listings failed: %v", id, err)
		return err
	}

	return nil
}

var errTaken = errors.New("already taken")

// ensureFree devuelve errTaken si la búsqueda encontró a otro usuario
func (s *userService) ensureFree(user *domain.User, err error) error {
	taken, err := exists(user, err)
	if err != nil {
		return utils.NewInternalError(err)
	}
	if taken {
		return errTaken
	}
	return nil
}
