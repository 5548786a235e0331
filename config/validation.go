package config

import (
	"fmt"
	"strconv"
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

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"", "json", "console"}
)

// ValidateConfig checks the configuration and reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		add("SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort))
	}

	switch cfg.StoreDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			add("MONGO_URI", "required when STORE_DRIVER is mongo")
		}
		if cfg.MongoDatabase == "" {
			add("MONGO_DATABASE", "must not be empty")
		}
	case DriverPostgres, DriverSQLite:
		if cfg.DatabaseURL == "" {
			add("DATABASE_URL", "required when STORE_DRIVER is "+cfg.StoreDriver)
		}
	case DriverFile:
		if cfg.RecipesFile == "" {
			add("RECIPES_FILE", "required when STORE_DRIVER is file")
		}
	default:
		add("STORE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StoreDriver))
	}

	if cfg.SearchLimit < 1 {
		add("SEARCH_LIMIT", "must be positive")
	}
	if cfg.HistoryTTL < 0 {
		add("HISTORY_TTL", "must not be negative")
	}
	if cfg.PasswordMode != PasswordPlaintext && cfg.PasswordMode != PasswordBcrypt {
		add("PASSWORD_MODE", fmt.Sprintf("unknown mode %q", cfg.PasswordMode))
	}
	if cfg.ClassifierURL != "" && cfg.ClassifierTimeout <= 0 {
		add("CLASSIFIER_TIMEOUT", "must be positive")
	}
	if cfg.S3BucketName != "" && cfg.TranscriptURLTTL <= 0 {
		add("TRANSCRIPT_URL_TTL", "must be positive")
	}
	if !contains(validLogLevels, cfg.LogLevel) {
		add("LOG_LEVEL", fmt.Sprintf("unknown level %q", cfg.LogLevel))
	}
	if !contains(validLogFormats, cfg.LogFormat) {
		add("LOG_FORMAT", fmt.Sprintf("unknown format %q", cfg.LogFormat))
	}

	if len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
