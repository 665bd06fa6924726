//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"

	"estate-api/domain"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// Se corre con: go test -tags integration ./repositories/...
func setupMongo(t *testing.T) (UserRepository, ListingRepository) {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("Failed to start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate mongo container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	client, err := NewMongoClient(ctx, uri)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("estate_test")
	users, err := NewUserMongoRepository(ctx, db)
	if err != nil {
		t.Fatalf("Failed to create user repository: %v", err)
	}
	listings, err := NewListingMongoRepository(ctx, db)
	if err != nil {
		t.Fatalf("Failed to create listing repository: %v", err)
	}
	return users, listings
}

func TestMongoRepositories(t *testing.T) {
	users, listings := setupMongo(t)
	ctx := context.Background()

	alice := &domain.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	if err := users.Create(ctx, alice); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	t.Run("duplicate email", func(t *testing.T) {
		err := users.Create(ctx, &domain.User{Username: "other", Email: "alice@example.com", Password: "hash"})
		if !errors.Is(err, ErrDuplicate) {
			t.Errorf("Expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("search and delete by owner", func(t *testing.T) {
		for _, name := range []string{"Beach house", "City flat", "Beach cabin"} {
			listing := &domain.Listing{
				Name:         name,
				Description:  "desc",
				Address:      "addr",
				RegularPrice: 100,
				Type:         domain.ListingTypeRent,
				Offer:        name == "Beach house",
				ImageURLs:    []string{"https://img.example.com/1.jpg"},
				UserRef:      alice.ID,
			}
			if err := listings.Create(ctx, listing); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
		}

		found, err := listings.Search(ctx, domain.ListingFilter{
			SearchTerm: "BEACH",
			Types:      []domain.ListingType{domain.ListingTypeSale, domain.ListingTypeRent},
			SortField:  "name",
			SortOrder:  "asc",
			Limit:      9,
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(found) != 2 || found[0].Name != "Beach cabin" {
			t.Errorf("Expected 2 beach listings sorted by name, got %+v", found)
		}

		deleted, err := listings.DeleteByUserRef(ctx, alice.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if deleted != 3 {
			t.Errorf("Expected 3 deleted, got %d", deleted)
		}
	})

	t.Run("missing listing", func(t *testing.T) {
		if _, err := listings.GetByID(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
