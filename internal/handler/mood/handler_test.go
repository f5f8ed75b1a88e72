package mood

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	moodservice "github.com/zhouzirui/mindshift/backend/internal/service/mood"
	"github.com/zhouzirui/mindshift/backend/internal/storage/memory"
)

// withUser mimics the auth middleware.
func withUser(userID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = r.WithContext(identity.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

func setupRouter(userID string) http.Handler {
	now := func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	store := memory.NewMoodStore(now)
	svc := moodservice.NewService(store, store, identity.ContextProvider{}, now)

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return withUser(userID, r)
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/mood", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestLogMoodCreatesThenUpdates(t *testing.T) {
	h := setupRouter("u1")
	if resp := post(h, `{"mood":6,"notes":"ok"}`); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if resp := post(h, `{"mood":8}`); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on same-day update, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/mood", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	var overview moodservice.Overview
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(overview.History) != 1 || overview.History[0].Mood != 8 {
		t.Fatalf("unexpected history: %+v", overview.History)
	}
}

func TestLogMoodErrors(t *testing.T) {
	cases := []struct {
		user string
		body string
		want int
	}{
		{"u1", `{}`, http.StatusBadRequest},
		{"", `{"mood":5}`, http.StatusUnauthorized},
		{"u1", `{"mood":11}`, http.StatusBadRequest},
		{"u1", `{"mood":"five"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if resp := post(setupRouter(tc.user), tc.body); resp.Code != tc.want {
			t.Fatalf("body %s user %q: expected %d, got %d", tc.body, tc.user, tc.want, resp.Code)
		}
	}
}

func TestMoodOptions(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter("").ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/mood/options", nil))
	var options []map[string]any
	json.NewDecoder(resp.Body).Decode(&options)
	if len(options) != 10 {
		t.Fatalf("expected 10 options, got %d", len(options))
	}
}
