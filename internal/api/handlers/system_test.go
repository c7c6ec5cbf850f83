package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saheminvest/saheminvest-backend/internal/api/handlers"
	"github.com/saheminvest/saheminvest-backend/internal/service"
	"github.com/saheminvest/saheminvest-backend/internal/testutil"
)

// TestSystemHandler_Health tests the GET /api/system/health endpoint.
func TestSystemHandler_Health(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewSystemHandler(service.NewSystemService(db))

	req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
	if response.Database != "ok" {
		t.Errorf("Expected database 'ok', got '%s'", response.Database)
	}
}
