package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"estate-api/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listingMongoRepository guarda las publicaciones en la colección "listings"
type listingMongoRepository struct {
	collection *mongo.Collection
}

// NewListingMongoRepository crea el repositorio y los índices de búsqueda
func NewListingMongoRepository(ctx context.Context, db *mongo.Database) (ListingRepository, error) {
	collection := db.Collection("listings")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userRef", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create listing indexes: %w", err)
	}

	return &listingMongoRepository{collection: collection}, nil
}

// Create inserta una publicación nueva
func (r *listingMongoRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if listing.ID == "" {
		listing.ID = newID()
	}
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, listing)
	return err
}

// GetByID busca una publicación por su ID
func (r *listingMongoRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	var listing domain.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// GetByUserRef trae todas las publicaciones de un usuario, las más nuevas primero
func (r *listingMongoRepository) GetByUserRef(ctx context.Context, userID string) ([]domain.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"userRef": userID}, opts)
}

// Update aplica un $set campo por campo
// Dos updates concurrentes sobre la misma publicación: gana el último
func (r *listingMongoRepository) Update(ctx context.Context, listing *domain.Listing) error {
	listing.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":          listing.Name,
		"description":   listing.Description,
		"address":       listing.Address,
		"regularPrice":  listing.RegularPrice,
		"discountPrice": listing.DiscountPrice,
		"bedrooms":      listing.Bedrooms,
		"bathrooms":     listing.Bathrooms,
		"furnished":     listing.Furnished,
		"parking":       listing.Parking,
		"type":          listing.Type,
		"offer":         listing.Offer,
		"imageUrls":     listing.ImageURLs,
		"updatedAt":     listing.UpdatedAt,
	}}

	result, err := r.collection.UpdateByID(ctx, listing.ID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete elimina una publicación por su ID
func (r *listingMongoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUserRef elimina todas las publicaciones de un usuario
func (r *listingMongoRepository) DeleteByUserRef(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userRef": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Search ejecuta el filtro armado por el query builder
func (r *listingMongoRepository) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	direction := -1
	if filter.SortOrder == "asc" {
		direction = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortField, Value: direction}}).
		SetSkip(int64(filter.StartIndex)).
		SetLimit(int64(filter.Limit))

	return r.find(ctx, buildMongoFilter(filter), opts)
}

func (r *listingMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := make([]domain.Listing, 0)
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// buildMongoFilter traduce un ListingFilter a un documento de consulta de Mongo
// Ejemplo: {name: {$regex: "casa", $options: "i"}, offer: true, type: {$in: ["sale","rent"]}}
func buildMongoFilter(filter domain.ListingFilter) bson.M {
	query := bson.M{}

	if filter.SearchTerm != "" {
		query["name"] = bson.M{
			"$regex":   regexp.QuoteMeta(filter.SearchTerm),
			"$options": "i",
		}
	}
	if filter.Offer != nil {
		query["offer"] = *filter.Offer
	}
	if filter.Furnished != nil {
		query["furnished"] = *filter.Furnished
	}
	if filter.Parking != nil {
		query["parking"] = *filter.Parking
	}
	if len(filter.Types) > 0 {
		query["type"] = bson.M{"$in": filter.Types}
	}

	return query
}
