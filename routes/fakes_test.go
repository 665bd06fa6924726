package routes

import (
	"context"
	"strings"
	"sync"

	"estate-api/domain"
	"estate-api/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryUserRepository guarda los usuarios en memoria para los tests end-to-end
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID().Hex()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// memoryListingRepository guarda las publicaciones en memoria en orden de creación
type memoryListingRepository struct {
	mu       sync.Mutex
	listings []domain.Listing
}

func (r *memoryListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing.ID = primitive.NewObjectID().Hex()
	r.listings = append(r.listings, *listing)
	return nil
}

func (r *memoryListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.listings {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryListingRepository) GetByUserRef(ctx context.Context, userID string) ([]domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Listing{}
	for _, l := range r.listings {
		if l.UserRef == userID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *memoryListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listings {
		if l.ID == listing.ID {
			r.listings[i] = *listing
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memoryListingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listings {
		if l.ID == id {
			r.listings = append(r.listings[:i], r.listings[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memoryListingRepository) DeleteByUserRef(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.listings[:0]
	var deleted int64
	for _, l := range r.listings {
		if l.UserRef == userID {
			deleted++
			continue
		}
		kept = append(kept, l)
	}
	r.listings = kept
	return deleted, nil
}

func (r *memoryListingRepository) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Listing{}
	for _, l := range r.listings {
		if filter.Offer != nil && l.Offer != *filter.Offer {
			continue
		}
		if filter.Furnished != nil && l.Furnished != *filter.Furnished {
			continue
		}
		if filter.Parking != nil && l.Parking != *filter.Parking {
			continue
		}
		typeMatches := false
		for _, t := range filter.Types {
			if t == l.Type {
				typeMatches = true
			}
		}
		if !typeMatches || !strings.Contains(strings.ToLower(l.Name), strings.ToLower(filter.SearchTerm)) {
			continue
		}
		result = append(result, l)
	}
	if filter.StartIndex >= len(result) {
		return []domain.Listing{}, nil
	}
	result = result[filter.StartIndex:]
	if len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}
