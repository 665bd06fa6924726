package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"estate-api/dto"
	"estate-api/utils"

	"github.com/gin-gonic/gin"
)

func newProtectedRouter(tokens *utils.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/protected", VerifyUser(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	router.NoRoute(NotFound)
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON error body, got %q", w.Body.String())
	}
	return body
}

// Test: sin cookie -> 401
func TestVerifyUser_MissingCookie(t *testing.T) {
	router := newProtectedRouter(utils.NewTokenManager("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Success || body.StatusCode != http.StatusUnauthorized || body.Message != "Unauthorized" {
		t.Errorf("Unexpected error body: %+v", body)
	}
}

// Test: token inválido -> 403
func TestVerifyUser_InvalidToken(t *testing.T) {
	router := newProtectedRouter(utils.NewTokenManager("test-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Message != "Forbidden" {
		t.Errorf("Expected message Forbidden, got %s", body.Message)
	}
}

// Test: token vencido -> 403
func TestVerifyUser_ExpiredToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret")
	past := tokens.WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) })
	token, err := past.GenerateToken("user-1", utils.PasswordTokenTTL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	router := newProtectedRouter(tokens)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestVerifyUser_ValidToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret")
	token, err := tokens.GenerateToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	router := newProtectedRouter(tokens)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %v", err)
	}
	if body["user_id"] != "user-1" {
		t.Errorf("Expected user_id user-1, got %s", body["user_id"])
	}
}

func TestNotFound(t *testing.T) {
	router := newProtectedRouter(utils.NewTokenManager("test-secret"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Message != "Route not found" {
		t.Errorf("Expected message 'Route not found', got %s", body.Message)
	}
}
