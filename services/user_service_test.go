package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/utils"
)

func newTestUserService(t *testing.T) (UserService, *mockUserRepository, *mockListingRepository) {
	t.Helper()
	users := newMockUserRepository()
	listings := newMockListingRepository()
	listingService := NewListingService(listings, newMockCache(), &mockPublisher{})
	return NewUserService(users, listingService), users, listings
}

func seedUser(t *testing.T, repo *mockUserRepository, username, email string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: email, Password: "hash", Avatar: domain.DefaultAvatar}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Expected no error seeding user, got %v", err)
	}
	return user
}

func TestGetUser(t *testing.T) {
	service, repo, _ := newTestUserService(t)
	alice := seedUser(t, repo, "alice", "alice@example.com")

	user, err := service.GetUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected alice@example.com, got %s", user.Email)
	}

	_, err = service.GetUser(context.Background(), "missing")
	expectStatus(t, err, http.StatusNotFound)
}

// Test: nadie puede actualizar la cuenta de otro
func TestUpdateUser_OnlySelf(t *testing.T) {
	service, repo, _ := newTestUserService(t)
	alice := seedUser(t, repo, "alice", "alice@example.com")

	_, err := service.UpdateUser(context.Background(), alice.ID, "user-99", dto.UpdateUserRequest{Username: ptr("mallory")})
	expectStatus(t, err, http.StatusUnauthorized)
}

func TestUpdateUser_Success(t *testing.T) {
	service, repo, _ := newTestUserService(t)
	alice := seedUser(t, repo, "alice", "alice@example.com")

	user, err := service.UpdateUser(context.Background(), alice.ID, alice.ID, dto.UpdateUserRequest{
		Username: ptr("alice2"),
		Password: ptr("newsecret"),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Username != "alice2" {
		t.Errorf("Expected username alice2, got %s", user.Username)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected email unchanged, got %s", user.Email)
	}

	stored := repo.users[alice.ID]
	if !utils.CheckPasswordHash("newsecret", stored.Password) {
		t.Error("Expected new password to be hashed and stored")
	}
}

func TestUpdateUser_UsernameTaken(t *testing.T) {
	service, repo, _ := newTestUserService(t)
	alice := seedUser(t, repo, "alice", "alice@example.com")
	seedUser(t, repo, "bob", "bob@example.com")

	_, err := service.UpdateUser(context.Background(), alice.ID, alice.ID, dto.UpdateUserRequest{Username: ptr("bob")})
	expectStatus(t, err, http.StatusBadRequest)

	_, err = service.UpdateUser(context.Background(), alice.ID, alice.ID, dto.UpdateUserRequest{Email: ptr("bob@example.com")})
	expectStatus(t, err, http.StatusBadRequest)
}

// Test: borrar la cuenta borra también sus publicaciones
func TestDeleteUser_RemovesListings(t *testing.T) {
	service, repo, listings := newTestUserService(t)
	alice := seedUser(t, repo, "alice", "alice@example.com")

	listings.listings["listing-a"] = domain.Listing{ID: "listing-a", UserRef: alice.ID}
	listings.listings["listing-b"] = domain.Listing{ID: "listing-b", UserRef: "someone-else"}

	expectStatus(t, service.DeleteUser(context.Background(), alice.ID, "someone-else"), http.StatusUnauthorized)

	if err := service.DeleteUser(context.Background(), alice.ID, alice.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, ok := repo.users[alice.ID]; ok {
		t.Error("Expected user to be deleted")
	}
	if _, ok := listings.listings["listing-a"]; ok {
		t.Error("Expected user's listing to be deleted")
	}
	if _, ok := listings.listings["listing-b"]; !ok {
		t.Error("Expected other users' listings to be kept")
	}
}

// Test: si no se puede borrar la cuenta, sus publicaciones no se tocan
func TestDeleteUser_FailureKeepsListings(t *testing.T) {
	service, repo, listings := newTestUserService(t)
	alice := seedUser(t, repo, "alice", "alice@example.com")
	listings.listings["listing-a"] = domain.Listing{ID: "listing-a", UserRef: alice.ID}
	repo.deleteErr = errors.New("connection reset")

	expectStatus(t, service.DeleteUser(context.Background(), alice.ID, alice.ID), http.StatusInternalServerError)

	if _, ok := repo.users[alice.ID]; !ok {
		t.Error("Expected user to be kept")
	}
	if _, ok := listings.listings["listing-a"]; !ok {
		t.Error("Expected listings to be kept when the account could not be deleted")
	}
}
