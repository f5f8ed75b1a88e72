package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Text string `json:"text"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`))
	if err := DecodeJSON(req, &dst); err != nil || dst.Text != "hi" {
		t.Fatalf("unexpected decode result %+v err=%v", dst, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bogus":1}`))
	if err := DecodeJSON(req, &dst); !errors.Is(err, ErrInvalidBody) {
		t.Fatalf("expected ErrInvalidBody, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("empty body should decode as empty object, got %v", err)
	}
}

func TestSendSSEEvent(t *testing.T) {
	resp := httptest.NewRecorder()
	SetupSSEHeaders(resp)
	if err := SendSSEEvent(resp, resp, "message", map[string]string{"text": "hello"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := resp.Body.String(); got != "event: message\ndata: {\"text\":\"hello\"}\n\n" {
		t.Fatalf("unexpected frame %q", got)
	}
	if resp.Header().Get("Content-Type") != "text/event-stream" {
		t.Fatal("missing event-stream content type")
	}
}
