package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/mindshift/backend/internal/handler/breathing"
	"github.com/zhouzirui/mindshift/backend/internal/handler/chat"
	"github.com/zhouzirui/mindshift/backend/internal/handler/focus"
	"github.com/zhouzirui/mindshift/backend/internal/handler/health"
	"github.com/zhouzirui/mindshift/backend/internal/handler/mood"
	"github.com/zhouzirui/mindshift/backend/internal/handler/review"
	"github.com/zhouzirui/mindshift/backend/internal/handler/stream"
	"github.com/zhouzirui/mindshift/backend/internal/handler/therapist"
	middlewarePkg "github.com/zhouzirui/mindshift/backend/internal/middleware"
	breathingModel "github.com/zhouzirui/mindshift/backend/internal/model/breathing"
	"github.com/zhouzirui/mindshift/backend/internal/ratelimit"
	breathingService "github.com/zhouzirui/mindshift/backend/internal/service/breathing"
	chatService "github.com/zhouzirui/mindshift/backend/internal/service/chat"
	focusService "github.com/zhouzirui/mindshift/backend/internal/service/focus"
	moodService "github.com/zhouzirui/mindshift/backend/internal/service/mood"
	reviewService "github.com/zhouzirui/mindshift/backend/internal/service/review"
	therapistService "github.com/zhouzirui/mindshift/backend/internal/service/therapist"
)

// Deps collects what the HTTP layer needs. Limiter, Verifier and DB may be nil.
type Deps struct {
	Chat       *chatService.Service
	Mood       *moodService.Service
	Focus      *focusService.Service
	Reviews    *reviewService.Service
	Therapists *therapistService.Directory
	Exercises  []breathingModel.Exercise
	Breathing  breathingService.Config

	Limiter  ratelimit.Limiter
	Verifier middlewarePkg.TokenVerifier
	DB       health.Pinger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	health.New(deps.DB).RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		api.Use(middlewarePkg.Auth(deps.Verifier))

		chat.New(deps.Chat, deps.Limiter).RegisterRoutes(api)
		stream.New(deps.Chat, deps.Limiter).RegisterRoutes(api)
		mood.New(deps.Mood).RegisterRoutes(api)
		focus.New(deps.Focus).RegisterRoutes(api)
		therapist.New(deps.Therapists).RegisterRoutes(api)
		review.New(deps.Reviews).RegisterRoutes(api)
		breathing.New(deps.Exercises, deps.Breathing).RegisterRoutes(api)
	})

	return r
}
