package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	"github.com/zhouzirui/mindshift/backend/internal/ratelimit"
)

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserIDFromContext(r.Context())
		w.Write([]byte(userID))
	})
}

func TestAuthAnonymousWithoutToken(t *testing.T) {
	v, _ := identity.NewVerifier("secret", identity.VerifierOptions{})
	resp := httptest.NewRecorder()
	Auth(v)(echoUser()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Code != http.StatusOK || resp.Body.String() != "" {
		t.Fatalf("expected anonymous pass-through, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	v, _ := identity.NewVerifier("secret", identity.VerifierOptions{})
	token, _ := v.Issue("user-7", time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	Auth(v)(echoUser()).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK || resp.Body.String() != "user-7" {
		t.Fatalf("expected user-7, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	v, _ := identity.NewVerifier("secret", identity.VerifierOptions{})
	token, _ := v.Issue("user-8", time.Minute)

	resp := httptest.NewRecorder()
	Auth(v)(echoUser()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/?access_token="+token, nil))

	if resp.Body.String() != "user-8" {
		t.Fatalf("expected user-8, got %q", resp.Body.String())
	}
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	v, _ := identity.NewVerifier("secret", identity.VerifierOptions{})
	token, _ := v.Issue("user-7", time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	resp := httptest.NewRecorder()
	Auth(v)(echoUser()).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

type countingLimiter struct{ remaining int }

func (l *countingLimiter) Allow(context.Context, string) bool {
	l.remaining--
	return l.remaining >= 0
}

func TestRateLimitBlocksPastQuota(t *testing.T) {
	h := RateLimit(&countingLimiter{remaining: 1})(echoUser())

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes: %d then %d", first.Code, second.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	resp := httptest.NewRecorder()
	CORS(echoUser()).ServeHTTP(resp, httptest.NewRequest(http.MethodOptions, "/", nil))
	if resp.Code != http.StatusNoContent || resp.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected preflight response: %d %v", resp.Code, resp.Header())
	}
}

func TestRateLimitSharesQuotaAcrossClientPorts(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(mr.Addr(), "", "test:chat", 1, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	defer limiter.Close()
	h := RateLimit(limiter)(echoUser())

	var codes []int
	for _, addr := range []string{"203.0.113.9:50001", "203.0.113.9:50002", "203.0.113.9:50003"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected one pass then 429s for the same host, got %v", codes)
	}
	if keys := mr.Keys(); len(keys) != 1 {
		t.Fatalf("expected a single quota key for the host, got %v", keys)
	}
}

func TestClientIP(t *testing.T) {
	cases := map[string]string{
		"203.0.113.9:50001": "203.0.113.9",
		"[2001:db8::1]:443": "2001:db8::1",
		"203.0.113.9":       "203.0.113.9",
	}
	for remote, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		if got := ClientIP(req); got != want {
			t.Fatalf("ClientIP(%q) = %q, want %q", remote, got, want)
		}
	}
}
