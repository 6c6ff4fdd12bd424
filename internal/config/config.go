package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client and the mock API.
type Config struct {
	App       AppConfig
	API       APIConfig
	Store     StoreConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Telemetry TelemetryConfig
	Mock      MockConfig
}

// AppConfig identifies the running binary.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// APIConfig controls how the remote adoption API is reached.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
	RateLimitRPS   float64
	RateLimitBurst int
}

// StoreConfig controls credential persistence keys.
type StoreConfig struct {
	KeyPrefix string
}

// RedisConfig holds Redis connection values for the durable credential scope.
// An empty Addr keeps the durable scope in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// TelemetryConfig configures OTLP trace export.
type TelemetryConfig struct {
	Endpoint string
	Insecure bool
}

// MockConfig configures the local mock API server.
type MockConfig struct {
	Host                  string
	Port                  string
	JWTSecret             string
	AccessTokenTTLMinutes int
	RefreshTTLHours       int
	BcryptCost            int
	Seed                  bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "adoption-client"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getEnv("ADOPTION_API_URL", "http://localhost:3001/api"), "/"),
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 10),
			RateLimitRPS:   getEnvAsFloat("API_RATE_LIMIT_RPS", 20),
			RateLimitBurst: getEnvAsInt("API_RATE_LIMIT_BURST", 10),
		},
		Store: StoreConfig{
			KeyPrefix: getEnv("TOKEN_KEY_PREFIX", "adoption:"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("TOKEN_REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Telemetry: TelemetryConfig{
			Endpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure: getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		},
		Mock: MockConfig{
			Host:                  getEnv("MOCK_HOST", "0.0.0.0"),
			Port:                  getEnv("MOCK_PORT", "3001"),
			JWTSecret:             getEnv("MOCK_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("MOCK_ACCESS_TOKEN_TTL_MINUTES", 15),
			RefreshTTLHours:       getEnvAsInt("MOCK_REFRESH_TTL_HOURS", 24*7),
			BcryptCost:            getEnvAsInt("MOCK_BCRYPT_COST", 10),
			Seed:                  getEnvAsBool("MOCK_SEED", true),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("ADOPTION_API_URL must not be empty")
	}
	return cfg, nil
}

// Timeout returns the per-call timeout, defaulting to ten seconds.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Addr returns the mock API bind address.
func (m MockConfig) Addr() string {
	return fmt.Sprintf("%s:%s", m.Host, m.Port)
}

// AccessTTL returns the lifetime of issued access tokens.
func (m MockConfig) AccessTTL() time.Duration {
	return time.Duration(m.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTTL returns the lifetime of refresh cookies.
func (m MockConfig) RefreshTTL() time.Duration {
	return time.Duration(m.RefreshTTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
