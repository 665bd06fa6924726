package repositories

import (
	"context"
	"strings"

	"estate-api/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// listingGormRepository es la implementación de ListingRepository sobre MySQL
type listingGormRepository struct {
	db *gorm.DB
}

// NewListingGormRepository crea una nueva instancia del repositorio
func NewListingGormRepository(db *gorm.DB) ListingRepository {
	return &listingGormRepository{db: db}
}

// Create inserta una publicación nueva
func (r *listingGormRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if listing.ID == "" {
		listing.ID = newID()
	}
	return translateGormError(r.db.WithContext(ctx).Create(listing).Error)
}

// GetByID -> SELECT * FROM listings WHERE id = ?
func (r *listingGormRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	var listing domain.Listing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &listing, nil
}

// GetByUserRef trae todas las publicaciones de un usuario
func (r *listingGormRepository) GetByUserRef(ctx context.Context, userID string) ([]domain.Listing, error) {
	listings := make([]domain.Listing, 0)
	err := r.db.WithContext(ctx).
		Where("user_ref = ?", userID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

// Update guarda todos los campos editables
// Select("*") hace que GORM también escriba los valores cero (false, 0)
// Con Model(listing) GORM deja el nuevo updated_at en la misma publicación
func (r *listingGormRepository) Update(ctx context.Context, listing *domain.Listing) error {
	result := r.db.WithContext(ctx).Model(listing).
		Select("*").
		Omit("id", "user_ref", "created_at").
		Updates(listing)
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete -> DELETE FROM listings WHERE id = ?
func (r *listingGormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Listing{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUserRef -> DELETE FROM listings WHERE user_ref = ?
func (r *listingGormRepository) DeleteByUserRef(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Listing{}, "user_ref = ?", userID)
	return result.RowsAffected, result.Error
}

// Search arma el SELECT con los filtros, el orden y la paginación
func (r *listingGormRepository) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	query := r.db.WithContext(ctx).Model(&domain.Listing{})

	if filter.SearchTerm != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(filter.SearchTerm))+"%")
	}
	if filter.Offer != nil {
		query = query.Where("offer = ?", *filter.Offer)
	}
	if filter.Furnished != nil {
		query = query.Where("furnished = ?", *filter.Furnished)
	}
	if filter.Parking != nil {
		query = query.Where("parking = ?", *filter.Parking)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}

	column, ok := sortColumns[filter.SortField]
	if !ok {
		column = "created_at"
	}

	listings := make([]domain.Listing, 0)
	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: filter.SortOrder != "asc"}).
		Offset(filter.StartIndex).
		Limit(filter.Limit).
		Find(&listings).Error
	return listings, err
}

// escapeLike escapa los comodines de LIKE para que el término sea literal
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
