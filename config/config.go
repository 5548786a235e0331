package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverFile     = "file"
)

// Password storage modes
const (
	PasswordPlaintext = "plaintext"
	PasswordBcrypt    = "bcrypt"
)

// DefaultAllowedOrigins are the deployed frontends.
var DefaultAllowedOrigins = []string{
	"https://ai-powered-recipe-chatbot.vercel.app",
	"http://localhost:3000",
	"https://ai-powered-recipe-chatbot-2u7m.vercel.app",
}

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost     string
	ServerPort     string
	AllowedOrigins []string

	// Storage configuration
	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string
	RecipesFile   string
	SearchLimit   int

	// Chat history side-channel
	RedisURL      string
	RedisPassword string
	HistoryTTL    time.Duration

	PasswordMode string

	// Intent classification
	ClassifierURL     string
	ClassifierAPIKey  string
	ClassifierTimeout time.Duration

	// Transcript sharing
	S3BucketName     string
	AWSRegion        string
	TranscriptURLTTL time.Duration

	LogLevel  string
	LogFormat string
}

// IsProduction reports whether the config was loaded for production.
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig builds the configuration from defaults, an optional config file,
// a .env file, the process environment and Docker secrets, in that order of
// precedence.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// .env is a development convenience; it never overrides real variables.
	if env != Production {
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		Environment:       env,
		ServerHost:        v.GetString("SERVER_HOST"),
		ServerPort:        v.GetString("SERVER_PORT"),
		AllowedOrigins:    splitList(v.GetString("ALLOWED_ORIGINS")),
		StoreDriver:       strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:          v.GetString("MONGO_URI"),
		MongoDatabase:     v.GetString("MONGO_DATABASE"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RecipesFile:       v.GetString("RECIPES_FILE"),
		SearchLimit:       v.GetInt("SEARCH_LIMIT"),
		RedisURL:          v.GetString("REDIS_URL"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		HistoryTTL:        v.GetDuration("HISTORY_TTL"),
		PasswordMode:      strings.ToLower(v.GetString("PASSWORD_MODE")),
		ClassifierURL:     v.GetString("CLASSIFIER_URL"),
		ClassifierAPIKey:  v.GetString("CLASSIFIER_API_KEY"),
		ClassifierTimeout: v.GetDuration("CLASSIFIER_TIMEOUT"),
		S3BucketName:      v.GetString("S3_BUCKET_NAME"),
		AWSRegion:         v.GetString("AWS_REGION"),
		TranscriptURLTTL:  v.GetDuration("TRANSCRIPT_URL_TTL"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:         strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	// CI uses environment variables only
	if env != CI {
		applySecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("ALLOWED_ORIGINS", strings.Join(DefaultAllowedOrigins, ","))
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_DATABASE", "recipes")
	v.SetDefault("SEARCH_LIMIT", 5)
	v.SetDefault("HISTORY_TTL", 7*24*time.Hour)
	v.SetDefault("PASSWORD_MODE", PasswordPlaintext)
	v.SetDefault("CLASSIFIER_TIMEOUT", 15*time.Second)
	v.SetDefault("TRANSCRIPT_URL_TTL", 15*time.Minute)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
}

// applySecrets overrides sensitive values with Docker secrets when present.
func applySecrets(cfg *Config) {
	for name, dst := range map[string]*string{
		"mongo_uri":          &cfg.MongoURI,
		"database_url":       &cfg.DatabaseURL,
		"redis_password":     &cfg.RedisPassword,
		"classifier_api_key": &cfg.ClassifierAPIKey,
	} {
		if value := readSecret(name); value != "" {
			*dst = value
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
