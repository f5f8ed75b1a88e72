package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Typing    TypingConfig
	Chat      ChatConfig
	Breathing BreathingConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	rateLimit, err := loadRateLimitConfig()
	if err != nil {
		return nil, err
	}

	typing, err := loadTypingConfig()
	if err != nil {
		return nil, err
	}

	breathing, err := loadBreathingConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	idleTTL, err := parseDurationEnv("CHAT_SESSION_IDLE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Storage:   storage,
		RateLimit: rateLimit,
		Auth:      loadAuthConfig(),
		Typing:    typing,
		Chat:      ChatConfig{SessionIdleTTL: idleTTL},
		Breathing: breathing,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr     string
	LogLevel string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	logLevel := getEnvOrDefault("LOG_LEVEL", "info")

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port, LogLevel: logLevel}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, LogLevel: logLevel}, nil
}

// StorageConfig 描述持久化配置，DatabaseURL 为空时使用内存存储。
type StorageConfig struct {
	DatabaseURL    string
	SeedTherapists bool
}

func loadStorageConfig() (StorageConfig, error) {
	seed, err := parseBoolEnv("SEED_THERAPISTS", true)
	if err != nil {
		return StorageConfig{}, err
	}
	return StorageConfig{
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SeedTherapists: seed,
	}, nil
}

// UsePostgres 表示是否配置了数据库。
func (c StorageConfig) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// RateLimitConfig 描述聊天发送接口的限流配置。
type RateLimitConfig struct {
	RedisAddr     string
	RedisPassword string
	Limit         int
	Window        time.Duration
}

// Enabled 表示是否配置了 Redis。
func (c RateLimitConfig) Enabled() bool {
	return c.RedisAddr != ""
}

func loadRateLimitConfig() (RateLimitConfig, error) {
	limit := 20
	if override, err := parseOptionalIntEnv("CHAT_RATE_LIMIT"); err != nil {
		return RateLimitConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return RateLimitConfig{}, fmt.Errorf("invalid CHAT_RATE_LIMIT value %d: must be positive", *override)
		}
		limit = *override
	}

	window, err := parseDurationEnv("CHAT_RATE_WINDOW", time.Minute)
	if err != nil {
		return RateLimitConfig{}, err
	}

	return RateLimitConfig{
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Limit:         limit,
		Window:        window,
	}, nil
}

// AuthConfig 描述 JWT 校验配置，Secret 为空时所有请求都视为匿名。
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
}

// Enabled 表示是否配置了签名密钥。
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
		Issuer:    strings.TrimSpace(os.Getenv("AUTH_JWT_ISSUER")),
		Audience:  getEnvOrDefault("AUTH_JWT_AUDIENCE", "authenticated"),
	}
}

// TypingConfig 描述打字模拟的节奏，零值表示使用默认值。
type TypingConfig struct {
	Tick    time.Duration
	PerChar time.Duration
}

func loadTypingConfig() (TypingConfig, error) {
	var cfg TypingConfig

	tick, err := parseOptionalIntEnv("TYPING_TICK_MS")
	if err != nil {
		return TypingConfig{}, err
	}
	if tick != nil && *tick > 0 {
		cfg.Tick = time.Duration(*tick) * time.Millisecond
	}

	perChar, err := parseOptionalIntEnv("TYPING_PER_CHAR_MS")
	if err != nil {
		return TypingConfig{}, err
	}
	if perChar != nil && *perChar > 0 {
		cfg.PerChar = time.Duration(*perChar) * time.Millisecond
	}

	return cfg, nil
}

// ChatConfig 描述聊天会话的保留时间，超过 SessionIdleTTL 未访问的会话会被关闭。
type ChatConfig struct {
	SessionIdleTTL time.Duration
}

// BreathingConfig 描述呼吸练习的节奏和可选的练习目录文件。
type BreathingConfig struct {
	Pacing        float64
	ExercisesFile string
}

func loadBreathingConfig() (BreathingConfig, error) {
	pacing, err := parseOptionalFloatEnv("BREATHING_PACING")
	if err != nil {
		return BreathingConfig{}, err
	}

	cfg := BreathingConfig{ExercisesFile: strings.TrimSpace(os.Getenv("BREATHING_EXERCISES_FILE"))}
	if pacing != nil {
		if *pacing <= 0 {
			return BreathingConfig{}, fmt.Errorf("invalid BREATHING_PACING value %v: must be positive", *pacing)
		}
		cfg.Pacing = *pacing
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
