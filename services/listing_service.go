package services

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/publishers"
	"estate-api/repositories"
	"estate-api/utils"
)

// Mensajes de error de publicaciones
const (
	MsgListingNotFound   = "Listing not found!"
	MsgNotListingOwner   = "You can only modify your own listings!"
	MsgOnlyOwnListings   = "You can only view your own listings!"
	MsgListingIncomplete = "All fields are required."
)

// ListingService define la interfaz del servicio de publicaciones
type ListingService interface {
	CreateListing(ctx context.Context, req dto.CreateListingRequest, ownerID string) (*domain.Listing, error)
	UpdateListing(ctx context.Context, id string, req dto.UpdateListingRequest, requesterID string) (*domain.Listing, error)
	DeleteListing(ctx context.Context, id, requesterID string) error
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	GetUserListings(ctx context.Context, ownerID, requesterID string) ([]domain.Listing, error)
	SearchListings(ctx context.Context, params dto.ListingSearchParams) ([]domain.Listing, error)
	DeleteAllForOwner(ctx context.Context, ownerID string) error
}

// listingService implementa ListingService
type listingService struct {
	repo      repositories.ListingRepository
	cache     repositories.CacheRepository
	publisher publishers.ListingPublisher
}

// NewListingService crea una nueva instancia de ListingService
func NewListingService(repo repositories.ListingRepository, cache repositories.CacheRepository, publisher publishers.ListingPublisher) ListingService {
	return &listingService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

// CreateListing crea una publicación a nombre del usuario de la sesión
// El userRef del body se ignora siempre
func (s *listingService) CreateListing(ctx context.Context, req dto.CreateListingRequest, ownerID string) (*domain.Listing, error) {
	if ownerID == "" {
		return nil, utils.NewUnauthorizedError("Unauthorized")
	}
	if req.UserRef != "" && req.UserRef != ownerID {
		log.Printf("CreateListing: ignoring userRef=%s from body, using session user=%s", req.UserRef, ownerID)
	}

	listing := &domain.Listing{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Address:       strings.TrimSpace(req.Address),
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Furnished:     req.Furnished,
		Parking:       req.Parking,
		Type:          domain.ListingType(req.Type),
		Offer:         req.Offer,
		ImageURLs:     req.ImageURLs,
		UserRef:       ownerID,
	}

	if err := validateListing(listing); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, utils.NewInternalError(err)
	}

	s.afterChange(ctx, dto.ActionCreate, listing.ID, ownerID)
	return listing, nil
}

// UpdateListing aplica el patch sobre la publicación si el que pide es el dueño
func (s *listingService) UpdateListing(ctx context.Context, id string, req dto.UpdateListingRequest, requesterID string) (*domain.Listing, error) {
	// 1. Buscar la publicación
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Solo el dueño puede modificarla, aunque el patch venga vacío
	if listing.UserRef != requesterID {
		return nil, utils.NewForbiddenError(MsgNotListingOwner)
	}

	// 3. Mezclar: campo presente reemplaza, campo ausente se conserva
	applyListingPatch(listing, req)

	if err := validateListing(listing); err != nil {
		return nil, err
	}

	// 4. Guardar
	if err := s.repo.Update(ctx, listing); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewNotFoundError(MsgListingNotFound)
		}
		return nil, utils.NewInternalError(err)
	}

	s.afterChange(ctx, dto.ActionUpdate, listing.ID, requesterID)
	return listing, nil
}

// DeleteListing elimina la publicación si el que pide es el dueño
func (s *listingService) DeleteListing(ctx context.Context, id, requesterID string) error {
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return err
	}

	if listing.UserRef != requesterID {
		return utils.NewForbiddenError("You can only delete your own listings!")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NewNotFoundError(MsgListingNotFound)
		}
		return utils.NewInternalError(err)
	}

	s.afterChange(ctx, dto.ActionDelete, id, requesterID)
	return nil
}

// GetListing obtiene una publicación por su ID (ruta pública)
func (s *listingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.NewNotFoundError(MsgListingNotFound)
		}
		return nil, utils.NewInternalError(err)
	}
	return listing, nil
}

// GetUserListings devuelve las publicaciones de un usuario
// Solo el propio usuario puede verlas por esta ruta
func (s *listingService) GetUserListings(ctx context.Context, ownerID, requesterID string) ([]domain.Listing, error) {
	if ownerID != requesterID {
		return nil, utils.NewForbiddenError(MsgOnlyOwnListings)
	}

	listings, err := s.repo.GetByUserRef(ctx, ownerID)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return listings, nil
}

// SearchListings implementa la búsqueda con caché
func (s *listingService) SearchListings(ctx context.Context, params dto.ListingSearchParams) ([]domain.Listing, error) {
	filter, err := BuildListingFilter(params)
	if err != nil {
		return nil, err
	}

	// 1. Consultar caché primero
	cacheKey := s.generateCacheKey(filter)
	if listings, found := s.cache.Get(cacheKey); found {
		return listings, nil
	}

	// 2. Si no hay hit, consultar la base
	listings, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, utils.NewInternalError(fmt.Errorf("error searching listings: %w", err))
	}

	// 3. Guardar resultado en caché
	s.cache.Set(cacheKey, listings)

	return listings, nil
}

// DeleteAllForOwner borra todas las publicaciones de un usuario
// Se usa cuando el usuario elimina su cuenta
func (s *listingService) DeleteAllForOwner(ctx context.Context, ownerID string) error {
	deleted, err := s.repo.DeleteByUserRef(ctx, ownerID)
	if err != nil {
		return utils.NewInternalError(err)
	}

	log.Printf("DeleteAllForOwner: deleted %d listings of user=%s", deleted, ownerID)
	if deleted > 0 {
		s.afterChange(ctx, dto.ActionDelete, "", ownerID)
	}
	return nil
}

// afterChange invalida el caché y avisa a las demás instancias
// Un error al publicar no hace fallar la operación, solo queda en el log
func (s *listingService) afterChange(ctx context.Context, action, listingID, userID string) {
	s.cache.Invalidate()

	event := dto.ListingEvent{
		Action:     action,
		ListingID:  listingID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Error publishing listing event (Action=%s, ListingID=%s): %v", action, listingID, err)
	}
}

// generateCacheKey genera una clave de caché basada en el filtro ya interpretado
func (s *listingService) generateCacheKey(filter domain.ListingFilter) string {
	keyParts := []string{
		fmt.Sprintf("searchTerm:%s", strings.ToLower(filter.SearchTerm)),
		fmt.Sprintf("offer:%s", formatOptionalBool(filter.Offer)),
		fmt.Sprintf("furnished:%s", formatOptionalBool(filter.Furnished)),
		fmt.Sprintf("parking:%s", formatOptionalBool(filter.Parking)),
		fmt.Sprintf("type:%v", filter.Types),
		fmt.Sprintf("sort:%s", filter.SortField),
		fmt.Sprintf("order:%s", filter.SortOrder),
		fmt.Sprintf("limit:%d", filter.Limit),
		fmt.Sprintf("startIndex:%d", filter.StartIndex),
	}

	keyString := strings.Join(keyParts, "|")
	hash := md5.Sum([]byte(keyString))
	return fmt.Sprintf("listings:%s:%x", s.cache.Version(), hash)
}

func formatOptionalBool(value *bool) string {
	if value == nil {
		return "any"
	}
	if *value {
		return "true"
	}
	return "false"
}

// applyListingPatch copia en la publicación solo los campos presentes en el patch
func applyListingPatch(listing *domain.Listing, req dto.UpdateListingRequest) {
	if req.Name != nil {
		listing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		listing.Description = strings.TrimSpace(*req.Description)
	}
	if req.Address != nil {
		listing.Address = strings.TrimSpace(*req.Address)
	}
	if req.RegularPrice != nil {
		listing.RegularPrice = *req.RegularPrice
	}
	if req.DiscountPrice != nil {
		listing.DiscountPrice = *req.DiscountPrice
	}
	if req.Bedrooms != nil {
		listing.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		listing.Bathrooms = *req.Bathrooms
	}
	if req.Furnished != nil {
		listing.Furnished = *req.Furnished
	}
	if req.Parking != nil {
		listing.Parking = *req.Parking
	}
	if req.Type != nil {
		listing.Type = domain.ListingType(*req.Type)
	}
	if req.Offer != nil {
		listing.Offer = *req.Offer
	}
	if req.ImageURLs != nil {
		listing.ImageURLs = *req.ImageURLs
	}
}

// validateListing valida una publicación antes de guardarla
// No se exige discountPrice < regularPrice cuando hay oferta
func validateListing(listing *domain.Listing) error {
	if listing.Name == "" || listing.Description == "" || listing.Address == "" {
		return utils.NewValidationError(MsgListingIncomplete)
	}
	if listing.RegularPrice <= 0 {
		return utils.NewValidationError("regularPrice must be greater than 0")
	}
	if listing.DiscountPrice < 0 {
		return utils.NewValidationError("discountPrice cannot be negative")
	}
	if listing.Bedrooms < 0 {
		return utils.NewValidationError("bedrooms cannot be negative")
	}
	if listing.Bathrooms < 0 {
		return utils.NewValidationError("bathrooms cannot be negative")
	}
	if listing.Type != domain.ListingTypeSale && listing.Type != domain.ListingTypeRent {
		return utils.NewValidationError("type must be 'sale' or 'rent'")
	}
	if len(listing.ImageURLs) == 0 {
		return utils.NewValidationError("You must upload at least one image")
	}
	if len(listing.ImageURLs) > domain.MaxImages {
		return utils.NewValidationError(fmt.Sprintf("You can only upload %d images per listing", domain.MaxImages))
	}
	for _, imageURL := range listing.ImageURLs {
		if strings.TrimSpace(imageURL) == "" {
			return utils.NewValidationError("Image URLs cannot be empty")
		}
	}
	return nil
}
