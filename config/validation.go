package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var supportedDrivers = map[string]bool{"postgres": true, "sqlite": true}

var supportedProviders = map[string]bool{"openai": true, "gemini": true}

// ValidateConfig checks the configuration for the environment it was loaded in.
// All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}
	if !supportedDrivers[cfg.DBDriver] {
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}
	if cfg.DBDriver == "postgres" && cfg.DBHost == "" {
		add("DB_HOST", "is required for postgres")
	}
	if !supportedProviders[cfg.LLMProvider] {
		add("LLM_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.LLMProvider))
	}
	if cfg.LLMProvider == "gemini" && cfg.GeminiAPIKey == "" {
		add("GEMINI_API_KEY", "is required when LLM_PROVIDER=gemini")
	}
	if cfg.SuggestionRateLimit < 0 {
		add("SUGGESTION_RATE_LIMIT", "must not be negative")
	}

	// Secrets are only enforced where a missing one would be a deployment mistake.
	if cfg.Env == Production || cfg.Env == CI {
		if cfg.JWTSecret == "" {
			add("JWT_SECRET", "is required")
		}
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			add("DB_PASSWORD", "is required")
		}
	}
	if cfg.Env == Production && strings.HasPrefix(cfg.DBSSLMode, "disable") && cfg.DBDriver == "postgres" {
		add("DB_SSL_MODE", "must not be disabled in production")
	}

	return errors.Join(errs...)
}
