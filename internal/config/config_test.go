package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "DATABASE_URL", "SEED_THERAPISTS", "REDIS_ADDR",
		"CHAT_RATE_LIMIT", "CHAT_RATE_WINDOW", "AUTH_JWT_SECRET", "AUTH_JWT_AUDIENCE",
		"TYPING_TICK_MS", "TYPING_PER_CHAR_MS", "CHAT_SESSION_IDLE_TTL", "BREATHING_PACING", "BREATHING_EXERCISES_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.LogLevel != "info" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.UsePostgres() || !cfg.Storage.SeedTherapists {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.RateLimit.Enabled() || cfg.RateLimit.Limit != 20 || cfg.RateLimit.Window != time.Minute {
		t.Fatalf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if cfg.Auth.Enabled() || cfg.Auth.Audience != "authenticated" {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Chat.SessionIdleTTL != 30*time.Minute {
		t.Fatalf("unexpected session idle ttl: %s", cfg.Chat.SessionIdleTTL)
	}
	if cfg.Typing != (TypingConfig{}) || cfg.Breathing.Pacing != 0 {
		t.Fatalf("expected zero pacing overrides, got %+v %+v", cfg.Typing, cfg.Breathing)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("CHAT_RATE_LIMIT", "5")
	t.Setenv("CHAT_RATE_WINDOW", "30s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TYPING_TICK_MS", "10")
	t.Setenv("BREATHING_PACING", "1.5")
	t.Setenv("SEED_THERAPISTS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if !cfg.RateLimit.Enabled() || cfg.RateLimit.Limit != 5 || cfg.RateLimit.Window != 30*time.Second {
		t.Fatalf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if cfg.Typing.Tick != 10*time.Millisecond || cfg.Breathing.Pacing != 1.5 {
		t.Fatalf("unexpected pacing: %+v %+v", cfg.Typing, cfg.Breathing)
	}
	if cfg.Storage.SeedTherapists {
		t.Fatal("expected seeding disabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                  "80 80",
		"CHAT_RATE_LIMIT":       "zero",
		"CHAT_RATE_WINDOW":      "-1s",
		"BREATHING_PACING":      "0",
		"SEED_THERAPISTS":       "maybe",
		"CHAT_SESSION_IDLE_TTL": "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
