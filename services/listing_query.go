package services

import (
	"strconv"
	"strings"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/repositories"
	"estate-api/utils"
)

// Valores por defecto de la búsqueda
const (
	DefaultLimit     = 9
	MaxLimit         = 100
	DefaultSortField = "createdAt"
	DefaultSortOrder = "desc"
)

// BuildListingFilter convierte los query params de GET /api/listings en un ListingFilter
//
// offer, furnished y parking solo filtran con el valor literal "true".
// Ausente o "false" significan lo mismo: no filtrar por ese campo.
func BuildListingFilter(params dto.ListingSearchParams) (domain.ListingFilter, error) {
	filter := domain.ListingFilter{
		SearchTerm: strings.TrimSpace(params.SearchTerm),
		Offer:      onlyTrue(params.Offer),
		Furnished:  onlyTrue(params.Furnished),
		Parking:    onlyTrue(params.Parking),
		SortField:  DefaultSortField,
		SortOrder:  DefaultSortOrder,
		Limit:      DefaultLimit,
		StartIndex: 0,
	}

	// 1. Tipo: "all" o vacío incluye venta y alquiler
	switch params.Type {
	case "", "all":
		filter.Types = []domain.ListingType{domain.ListingTypeSale, domain.ListingTypeRent}
	case string(domain.ListingTypeSale), string(domain.ListingTypeRent):
		filter.Types = []domain.ListingType{domain.ListingType(params.Type)}
	default:
		return domain.ListingFilter{}, utils.NewValidationError("type must be 'sale', 'rent' or 'all'")
	}

	// 2. Orden
	if params.Sort != "" {
		if !repositories.IsSortableField(params.Sort) {
			return domain.ListingFilter{}, utils.NewValidationError("Invalid sort field: " + params.Sort)
		}
		filter.SortField = params.Sort
	}
	if params.Order != "" {
		if params.Order != "asc" && params.Order != "desc" {
			return domain.ListingFilter{}, utils.NewValidationError("order must be 'asc' or 'desc'")
		}
		filter.SortOrder = params.Order
	}

	// 3. Paginación
	if params.Limit != "" {
		limit, err := strconv.Atoi(params.Limit)
		if err != nil || limit < 1 || limit > MaxLimit {
			return domain.ListingFilter{}, utils.NewValidationError("limit must be a number between 1 and 100")
		}
		filter.Limit = limit
	}
	if params.StartIndex != "" {
		startIndex, err := strconv.Atoi(params.StartIndex)
		if err != nil || startIndex < 0 {
			return domain.ListingFilter{}, utils.NewValidationError("startIndex must be a number >= 0")
		}
		filter.StartIndex = startIndex
	}

	return filter, nil
}

// onlyTrue devuelve un filtro "true" solo para el string "true"
// Cualquier otro valor deja el campo sin restricción
func onlyTrue(value string) *bool {
	if value != "true" {
		return nil
	}
	t := true
	return &t
}
