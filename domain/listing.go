package domain

import "time"

// ListingType indica si la propiedad se vende o se alquila
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// MaxImages es la cantidad máxima de imágenes por publicación
const MaxImages = 6

// Listing representa una propiedad publicada por un usuario
type Listing struct {
	ID            string      `bson:"_id" gorm:"primaryKey;type:varchar(24)" json:"_id"`
	Name          string      `bson:"name" gorm:"not null" json:"name"`
	Description   string      `bson:"description" gorm:"type:text;not null" json:"description"`
	Address       string      `bson:"address" gorm:"not null" json:"address"`
	RegularPrice  float64     `bson:"regularPrice" json:"regularPrice"`
	DiscountPrice float64     `bson:"discountPrice" json:"discountPrice"`
	Bedrooms      int         `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int         `bson:"bathrooms" json:"bathrooms"`
	Furnished     bool        `bson:"furnished" json:"furnished"`
	Parking       bool        `bson:"parking" json:"parking"`
	Type          ListingType `bson:"type" gorm:"type:varchar(10);not null" json:"type"`
	Offer         bool        `bson:"offer" json:"offer"`
	ImageURLs     []string    `bson:"imageUrls" gorm:"serializer:json" json:"imageUrls"`
	UserRef       string      `bson:"userRef" gorm:"index;type:varchar(24);not null" json:"userRef"`
	CreatedAt     time.Time   `bson:"createdAt" gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// TableName especifica el nombre de la tabla en MySQL
func (Listing) TableName() string {
	return "listings"
}

// ListingFilter es la búsqueda ya interpretada
// Lo arma el query builder y lo consumen los repositorios
type ListingFilter struct {
	SearchTerm string
	// nil significa "sin restricción"
	Offer      *bool
	Furnished  *bool
	Parking    *bool
	Types      []ListingType
	SortField  string
	SortOrder  string // "asc" o "desc"
	Limit      int
	StartIndex int
}
