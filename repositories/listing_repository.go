package repositories

import (
	"context"

	"estate-api/domain"
)

// ListingRepository define la interfaz del repositorio de publicaciones
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	GetByUserRef(ctx context.Context, userID string) ([]domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id string) error
	DeleteByUserRef(ctx context.Context, userID string) (int64, error)
	Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
}

// sortColumns traduce el campo de orden de la API a la columna de MySQL
// En Mongo el nombre del campo es el mismo que en la API
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"regularPrice":  "regular_price",
	"discountPrice": "discount_price",
	"name":          "name",
	"bedrooms":      "bedrooms",
	"bathrooms":     "bathrooms",
}

// IsSortableField indica si se puede ordenar por ese campo
func IsSortableField(field string) bool {
	_, ok := sortColumns[field]
	return ok
}
