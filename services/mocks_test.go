package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/repositories"
)

// ============================================
// MOCKS de repositorios, caché y publisher
// ============================================
// Los mocks devuelven copias, igual que una base real:
// modificar lo que devuelve GetByID no cambia lo guardado

type mockUserRepository struct {
	mu        sync.Mutex
	users     map[string]domain.User
	nextID    int
	deleteErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type mockListingRepository struct {
	listings    map[string]domain.Listing
	nextID      int
	searchCalls int
	lastFilter  domain.ListingFilter
}

func newMockListingRepository() *mockListingRepository {
	return &mockListingRepository{listings: make(map[string]domain.Listing)}
}

func (m *mockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	m.nextID++
	listing.ID = fmt.Sprintf("listing-%d", m.nextID)
	m.listings[listing.ID] = *listing
	return nil
}

func (m *mockListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	listing, ok := m.listings[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &listing, nil
}

func (m *mockListingRepository) GetByUserRef(ctx context.Context, userID string) ([]domain.Listing, error) {
	result := []domain.Listing{}
	for _, listing := range m.listings {
		if listing.UserRef == userID {
			result = append(result, listing)
		}
	}
	return result, nil
}

func (m *mockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	if _, ok := m.listings[listing.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.listings[listing.ID] = *listing
	return nil
}

func (m *mockListingRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.listings[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.listings, id)
	return nil
}

func (m *mockListingRepository) DeleteByUserRef(ctx context.Context, userID string) (int64, error) {
	var deleted int64
	for id, listing := range m.listings {
		if listing.UserRef == userID {
			delete(m.listings, id)
			deleted++
		}
	}
	return deleted, nil
}

// Search aplica los filtros básicos sin ordenar
func (m *mockListingRepository) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	m.searchCalls++
	m.lastFilter = filter

	result := []domain.Listing{}
	for _, listing := range m.listings {
		if filter.Offer != nil && listing.Offer != *filter.Offer {
			continue
		}
		if filter.Furnished != nil && listing.Furnished != *filter.Furnished {
			continue
		}
		if filter.Parking != nil && listing.Parking != *filter.Parking {
			continue
		}
		if !containsType(filter.Types, listing.Type) {
			continue
		}
		if !strings.Contains(strings.ToLower(listing.Name), strings.ToLower(filter.SearchTerm)) {
			continue
		}
		result = append(result, listing)
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

func containsType(types []domain.ListingType, t domain.ListingType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

type mockCache struct {
	data        map[string][]domain.Listing
	version     int
	invalidated int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]domain.Listing)}
}

func (m *mockCache) Version() string { return fmt.Sprintf("v%d", m.version) }

func (m *mockCache) Get(key string) ([]domain.Listing, bool) {
	listings, ok := m.data[key]
	return listings, ok
}

func (m *mockCache) Set(key string, listings []domain.Listing) { m.data[key] = listings }

func (m *mockCache) Invalidate() {
	m.invalidated++
	m.version++
	m.data = make(map[string][]domain.Listing)
}

func (m *mockCache) ClearLocal() { m.data = make(map[string][]domain.Listing) }

type mockPublisher struct {
	events []dto.ListingEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, event dto.ListingEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }
