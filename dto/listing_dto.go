package dto

import "time"

// CreateListingRequest es el body de POST /api/listings
// UserRef se acepta en el JSON pero se ignora: el dueño sale de la sesión
type CreateListingRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	RegularPrice  float64  `json:"regularPrice"`
	DiscountPrice float64  `json:"discountPrice"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Furnished     bool     `json:"furnished"`
	Parking       bool     `json:"parking"`
	Type          string   `json:"type"`
	Offer         bool     `json:"offer"`
	ImageURLs     []string `json:"imageUrls"`
	UserRef       string   `json:"userRef,omitempty"`
}

// UpdateListingRequest es el body de PUT /api/listings/:listingId
// Un campo presente en el JSON reemplaza al actual, uno ausente se conserva
type UpdateListingRequest struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Address       *string   `json:"address,omitempty"`
	RegularPrice  *float64  `json:"regularPrice,omitempty"`
	DiscountPrice *float64  `json:"discountPrice,omitempty"`
	Bedrooms      *int      `json:"bedrooms,omitempty"`
	Bathrooms     *int      `json:"bathrooms,omitempty"`
	Furnished     *bool     `json:"furnished,omitempty"`
	Parking       *bool     `json:"parking,omitempty"`
	Type          *string   `json:"type,omitempty"`
	Offer         *bool     `json:"offer,omitempty"`
	ImageURLs     *[]string `json:"imageUrls,omitempty"`
}

// ListingSearchParams son los query params crudos de GET /api/listings
// Se leen como strings y el query builder los interpreta
type ListingSearchParams struct {
	SearchTerm string `form:"searchTerm"`
	Type       string `form:"type"`
	Offer      string `form:"offer"`
	Furnished  string `form:"furnished"`
	Parking    string `form:"parking"`
	Sort       string `form:"sort"`
	Order      string `form:"order"`
	Limit      string `form:"limit"`
	StartIndex string `form:"startIndex"`
}

// Acciones posibles de un ListingEvent
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ListingEvent es el mensaje que se publica en RabbitMQ cuando cambia una publicación
type ListingEvent struct {
	Action     string    `json:"action"` // "create", "update", "delete"
	ListingID  string    `json:"listing_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Origin     string    `json:"origin,omitempty"` // instancia que publicó el evento
}
