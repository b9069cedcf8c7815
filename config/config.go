package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerHost  string
	ServerPort  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWTSecret signs and verifies bearer tokens
	JWTSecret string

	// Text generation
	LLMProvider  string
	LLMBaseURL   string
	LLMModel     string
	LLMAPIKey    string
	LLMTimeout   time.Duration
	GeminiAPIKey string
	GeminiModel  string

	// Third-party lookups
	ProductAPIURL string
	RecipeAPIURL  string
	RecipeAPIKey  string

	// Suggestions
	SuggestionCacheTTL  time.Duration
	SuggestionRateLimit int

	// Shopping list exports
	S3Bucket  string
	AWSRegion string
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory if one exists, and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables without validating it.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:           GetEnvironment(),
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    readSecret("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "smartpantry"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "smartpantry.db"),
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: readSecret("REDIS_PASSWORD"),
		JWTSecret:     readSecret("JWT_SECRET"),
		LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMBaseURL:    getEnv("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMModel:      getEnv("LLM_MODEL", "llama3.1"),
		LLMAPIKey:     readSecret("LLM_API_KEY"),
		GeminiAPIKey:  readSecret("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		ProductAPIURL: getEnv("PRODUCT_API_URL", "https://world.openfoodfacts.org"),
		RecipeAPIURL:  getEnv("RECIPE_API_URL", "https://api.spoonacular.com"),
		RecipeAPIKey:  readSecret("RECIPE_API_KEY"),
		S3Bucket:      getEnv("S3_BUCKET_NAME", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
	}

	if cfg.JWTSecret == "" && (cfg.Env == Development || cfg.Env == Test) {
		cfg.JWTSecret = "smartpantry-dev-secret"
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SuggestionRateLimit, err = getInt("SUGGESTION_RATE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", 90*time.Second); err != nil {
		return nil, err
	}
	if cfg.SuggestionCacheTTL, err = getDuration("SUGGESTION_CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("must be an integer, got %q", v)}
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("must be a duration, got %q", v)}
	}
	return d, nil
}

// readSecret returns KEY if set, otherwise the trimmed contents of the file
// named by KEY_FILE (Docker secrets style).
func readSecret(key string) string {
	if v := getEnv(key, ""); v != "" {
		return v
	}
	path := getEnv(key+"_FILE", "")
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
