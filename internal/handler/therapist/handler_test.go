package therapist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	model "github.com/zhouzirui/mindshift/backend/internal/model/therapist"
	therapistservice "github.com/zhouzirui/mindshift/backend/internal/service/therapist"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(therapistservice.NewDirectory(model.NewMemoryStore(model.Seed()))).RegisterRoutes(r)
	return r
}

func TestListTherapists(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/therapists", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var items []model.Therapist
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 verified therapists, got %d", len(items))
	}
	for _, item := range items {
		if !item.Verified {
			t.Fatalf("unverified therapist listed: %+v", item)
		}
	}
}

func TestSearchTherapists(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/therapists?q=grief", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	var items []model.Therapist
	json.NewDecoder(resp.Body).Decode(&items)
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(items))
	}
}

func TestTherapistPins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/therapists/pins", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	var pins []therapistservice.Pin
	json.NewDecoder(resp.Body).Decode(&pins)
	if len(pins) != 3 {
		t.Fatalf("expected 3 pins, got %d", len(pins))
	}
}
