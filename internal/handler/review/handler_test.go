package review

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	model "github.com/zhouzirui/mindshift/backend/internal/model/review"
	reviewservice "github.com/zhouzirui/mindshift/backend/internal/service/review"
	"github.com/zhouzirui/mindshift/backend/internal/storage/memory"
)

func setupRouter(user string) *chi.Mux {
	r := chi.NewRouter()
	svc := reviewservice.NewService(memory.NewReviewStore(), identity.Static(user), nil)
	New(svc).RegisterRoutes(r)
	return r
}

func submit(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSubmitAndList(t *testing.T) {
	r := setupRouter("user-1")
	if resp := submit(r, `{"content":"Really helped me","rating":5}`); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var reviews []model.Review
	if err := json.NewDecoder(resp.Body).Decode(&reviews); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(reviews) != 1 || reviews[0].UserID != "user-1" || reviews[0].Rating != 5 {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
}

func TestSubmitErrors(t *testing.T) {
	cases := []struct {
		user string
		body string
		want int
	}{
		{"", `{"content":"ok","rating":4}`, http.StatusUnauthorized},
		{"user-1", `{"content":"  ","rating":4}`, http.StatusBadRequest},
		{"user-1", `{"content":"ok","rating":9}`, http.StatusBadRequest},
		{"user-1", `not json`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if resp := submit(setupRouter(tc.user), tc.body); resp.Code != tc.want {
			t.Fatalf("body %s: expected %d, got %d", tc.body, tc.want, resp.Code)
		}
	}
}
