package stream

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/identity"
	chatservice "github.com/zhouzirui/mindshift/backend/internal/service/chat"
	"github.com/zhouzirui/mindshift/backend/internal/service/typing"
)

func setup(t *testing.T) (*httptest.Server, *chatservice.Service) {
	t.Helper()
	chatSvc := chatservice.NewService(chatservice.Options{
		Identity: identity.Static(""),
		Typing: typing.NewScheduler(typing.Config{
			Tick:      time.Millisecond,
			PerChar:   time.Millisecond,
			MinSafety: 50 * time.Millisecond,
			MaxSafety: 100 * time.Millisecond,
		}),
	})
	r := chi.NewRouter()
	New(chatSvc, nil).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, chatSvc
}

func TestStreamDeliversEventsInOrder(t *testing.T) {
	srv, chatSvc := setup(t)
	session, err := chatSvc.CreateSession(t.Context())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	resp, err := http.Get(srv.URL + "/chat/sessions/" + session.ID + "/stream?message=" + url.QueryEscape("I feel anxious"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var events []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			events = append(events, name)
		}
	}

	want := []string{"start", "typing", "message", "end"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Fatalf("expected events %v, got %v", want, events)
	}

	transcript, _ := chatSvc.Transcript(t.Context(), session.ID)
	if len(transcript) != 3 {
		t.Fatalf("expected reply appended to transcript, got %d messages", len(transcript))
	}
}

func TestStreamRejectsEmptyMessage(t *testing.T) {
	srv, chatSvc := setup(t)
	session, _ := chatSvc.CreateSession(t.Context())

	resp, err := http.Get(srv.URL + "/chat/sessions/" + session.ID + "/stream")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
