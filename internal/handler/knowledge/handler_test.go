package knowledge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(knowledge.NewMemoryStore(knowledge.Seed())).RegisterRoutes(r)
	return r
}

func TestListCategories(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/categories", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var categories []knowledge.Category
	if err := json.Unmarshal(resp.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(categories))
	}
}

func TestGetCategory(t *testing.T) {
	r := setupRouter()

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/categories/ordering", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/categories/treatments", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
