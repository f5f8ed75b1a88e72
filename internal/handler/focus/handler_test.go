package focus

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	focusservice "github.com/zhouzirui/mindshift/backend/internal/service/focus"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(focusservice.NewService(nil)).RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, path, client, body string) (*httptest.ResponseRecorder, focusservice.State) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("X-Client-ID", client)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	var state focusservice.State
	json.NewDecoder(resp.Body).Decode(&state)
	return resp, state
}

func TestStartAndState(t *testing.T) {
	r := setupRouter()
	if _, st := do(r, http.MethodPost, "/focus/start", "a", ""); st.Status != focusservice.StatusRunning {
		t.Fatalf("expected running, got %+v", st)
	}
	if _, st := do(r, http.MethodGet, "/focus", "a", ""); st.Status != focusservice.StatusRunning {
		t.Fatalf("expected running on state fetch, got %+v", st)
	}
	if _, st := do(r, http.MethodGet, "/focus", "b", ""); st.Status != focusservice.StatusIdle {
		t.Fatalf("other client should be idle, got %+v", st)
	}
}

func TestSwitchInvalidMode(t *testing.T) {
	resp, _ := do(setupRouter(), http.MethodPost, "/focus/switch", "a", `{"mode":"nap"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUpdateSettings(t *testing.T) {
	r := setupRouter()
	resp, st := do(r, http.MethodPut, "/focus/settings", "a", `{"focus":30,"shortBreak":5,"longBreak":20}`)
	if resp.Code != http.StatusOK || st.RemainingSeconds != 30*60 {
		t.Fatalf("unexpected settings response %d %+v", resp.Code, st)
	}
	resp, _ = do(r, http.MethodPut, "/focus/settings", "a", `{"focus":0,"shortBreak":5,"longBreak":20}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnonymousTimerSurvivesNewConnection(t *testing.T) {
	r := setupRouter()

	start := httptest.NewRequest(http.MethodPost, "/focus/start", nil)
	start.RemoteAddr = "198.51.100.7:40001"
	r.ServeHTTP(httptest.NewRecorder(), start)

	again := httptest.NewRequest(http.MethodGet, "/focus", nil)
	again.RemoteAddr = "198.51.100.7:40002"
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, again)

	var st focusservice.State
	json.NewDecoder(resp.Body).Decode(&st)
	if st.Status != focusservice.StatusRunning {
		t.Fatalf("expected the same timer from a new port, got %+v", st)
	}
}
