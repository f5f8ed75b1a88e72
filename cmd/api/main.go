package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/mindshift/backend/internal/config"
	"github.com/zhouzirui/mindshift/backend/internal/handler"
	"github.com/zhouzirui/mindshift/backend/internal/identity"
	"github.com/zhouzirui/mindshift/backend/internal/model/breathing"
	chatModel "github.com/zhouzirui/mindshift/backend/internal/model/chat"
	moodModel "github.com/zhouzirui/mindshift/backend/internal/model/mood"
	reviewModel "github.com/zhouzirui/mindshift/backend/internal/model/review"
	"github.com/zhouzirui/mindshift/backend/internal/model/therapist"
	"github.com/zhouzirui/mindshift/backend/internal/observability"
	"github.com/zhouzirui/mindshift/backend/internal/ratelimit"
	breathingService "github.com/zhouzirui/mindshift/backend/internal/service/breathing"
	"github.com/zhouzirui/mindshift/backend/internal/service/chat"
	"github.com/zhouzirui/mindshift/backend/internal/service/focus"
	"github.com/zhouzirui/mindshift/backend/internal/service/mood"
	"github.com/zhouzirui/mindshift/backend/internal/service/review"
	therapistService "github.com/zhouzirui/mindshift/backend/internal/service/therapist"
	"github.com/zhouzirui/mindshift/backend/internal/service/typing"
	"github.com/zhouzirui/mindshift/backend/internal/storage/memory"
	"github.com/zhouzirui/mindshift/backend/internal/storage/postgres"
)

type stores struct {
	chat       chatModel.Store
	moods      moodModel.Store
	patterns   moodModel.PatternChecker
	reviews    reviewModel.Store
	therapists therapist.Store
	db         *postgres.Store
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.Init(cfg.Server.LogLevel)
	if envErr != nil {
		logger.Info("no .env file loaded, using system environment only", "error", envErr)
	}

	// The mood service and the pattern check must agree on "today".
	clock := time.Now

	st, err := openStores(cfg.Storage, clock, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	if st.db != nil {
		defer st.db.Close()
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled() {
		redisLimiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, "", cfg.RateLimit.Limit, cfg.RateLimit.Window)
		if err != nil {
			logger.Error("failed to initialize rate limiter", "error", err)
			os.Exit(1)
		}
		defer redisLimiter.Close()
		limiter = redisLimiter
		logger.Info("chat rate limiting enabled", "limit", cfg.RateLimit.Limit, "window", cfg.RateLimit.Window)
	} else {
		logger.Info("REDIS_ADDR not set, chat rate limiting disabled")
	}

	var verifier *identity.Verifier
	if cfg.Auth.Enabled() {
		verifier, err = identity.NewVerifier(cfg.Auth.JWTSecret, identity.VerifierOptions{
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
		})
		if err != nil {
			logger.Error("failed to initialize token verifier", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("AUTH_JWT_SECRET not set, every request is anonymous")
	}

	exercises := breathing.Seed()
	if cfg.Breathing.ExercisesFile != "" {
		exercises, err = breathing.LoadFile(cfg.Breathing.ExercisesFile)
		if err != nil {
			logger.Error("failed to load breathing exercises", "file", cfg.Breathing.ExercisesFile, "error", err)
			os.Exit(1)
		}
	}

	chatService := chat.NewService(chat.Options{
		Store:   st.chat,
		Typing:  typing.NewScheduler(typing.Config{Tick: cfg.Typing.Tick, PerChar: cfg.Typing.PerChar}),
		IdleTTL: cfg.Chat.SessionIdleTTL,
	})
	defer chatService.Close()

	deps := handler.Deps{
		Chat:       chatService,
		Mood:       mood.NewService(st.moods, st.patterns, nil, clock),
		Focus:      focus.NewService(nil),
		Reviews:    review.NewService(st.reviews, nil, nil),
		Therapists: therapistService.NewDirectory(st.therapists),
		Exercises:  exercises,
		Breathing:  breathingService.Config{Pacing: cfg.Breathing.Pacing},
		Limiter:    limiter,
	}
	if verifier != nil {
		deps.Verifier = verifier
	}
	if st.db != nil {
		deps.DB = st.db
	}

	startServer(ctx, logger, cfg.Server, handler.NewRouter(deps))
}

func openStores(cfg config.StorageConfig, now func() time.Time, logger *slog.Logger) (stores, error) {
	if !cfg.UsePostgres() {
		logger.Info("DATABASE_URL not set, using in-memory storage")
		moods := memory.NewMoodStore(now)
		return stores{
			chat:       memory.NewChatStore(),
			moods:      moods,
			patterns:   moods,
			reviews:    memory.NewReviewStore(),
			therapists: therapist.NewMemoryStore(therapist.Seed()),
		}, nil
	}

	opts := []postgres.Option{postgres.WithClock(now)}
	if cfg.SeedTherapists {
		opts = append(opts, postgres.WithTherapistSeed(therapist.Seed()))
	}
	db, err := postgres.Open(cfg.DatabaseURL, opts...)
	if err != nil {
		return stores{}, err
	}
	logger.Info("postgres storage ready")
	moods := db.Moods()
	return stores{
		chat:       db,
		moods:      moods,
		patterns:   moods,
		reviews:    db.Reviews(),
		therapists: db,
		db:         db,
	}, nil
}

func startServer(ctx context.Context, logger *slog.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("MindShift backend listening", "addr", addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
