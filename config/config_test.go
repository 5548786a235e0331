package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate pins the environment so host variables and secrets do not leak in.
func isolate(t *testing.T) string {
	t.Helper()
	secrets := t.TempDir()
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", secrets)
	t.Setenv("CONFIG_FILE", "")
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "ALLOWED_ORIGINS", "STORE_DRIVER", "MONGO_URI",
		"MONGO_DATABASE", "DATABASE_URL", "RECIPES_FILE", "SEARCH_LIMIT", "REDIS_URL",
		"REDIS_PASSWORD", "HISTORY_TTL", "PASSWORD_MODE", "CLASSIFIER_URL",
		"CLASSIFIER_API_KEY", "CLASSIFIER_TIMEOUT", "S3_BUCKET_NAME", "AWS_REGION",
		"TRANSCRIPT_URL_TTL", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	return secrets
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, DefaultAllowedOrigins, cfg.AllowedOrigins)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "recipes", cfg.MongoDatabase)
	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 168*time.Hour, cfg.HistoryTTL)
	assert.Equal(t, PasswordPlaintext, cfg.PasswordMode)
	assert.Equal(t, 15*time.Second, cfg.ClassifierTimeout)
	assert.Equal(t, 15*time.Minute, cfg.TranscriptURLTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "recipes.db")
	t.Setenv("HISTORY_TTL", "1h")
	t.Setenv("PASSWORD_MODE", "bcrypt")
	t.Setenv("SEARCH_LIMIT", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "recipes.db", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.HistoryTTL)
	assert.Equal(t, PasswordBcrypt, cfg.PasswordMode)
	assert.Equal(t, 10, cfg.SearchLimit)
}

func TestLoadConfigSecretsOverrideEnvironment(t *testing.T) {
	secrets := isolate(t)
	t.Setenv("MONGO_URI", "mongodb://from-env")
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "mongo_uri"), []byte("mongodb://from-secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "classifier_api_key"), []byte("hf_key"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://from-secret", cfg.MongoURI)
	assert.Equal(t, "hf_key", cfg.ClassifierAPIKey)
}

func TestLoadConfigIgnoresSecretsInCI(t *testing.T) {
	secrets := isolate(t)
	t.Setenv("CI", "true")
	t.Setenv("MONGO_URI", "mongodb://from-env")
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "mongo_uri"), []byte("mongodb://from-secret"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Environment)
	assert.Equal(t, "mongodb://from-env", cfg.MongoURI)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store_driver: file\nrecipes_file: data/recipes.json\nserver_port: \"7000\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "7100")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverFile, cfg.StoreDriver)
	assert.Equal(t, "data/recipes.json", cfg.RecipesFile)
	assert.Equal(t, "7100", cfg.ServerPort, "environment wins over the file")
}

func TestLoadConfigMissingFile(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidateConfigAggregatesErrors(t *testing.T) {
	cfg := &Config{
		ServerPort:   "http",
		StoreDriver:  "cassandra",
		SearchLimit:  0,
		PasswordMode: "md5",
		LogLevel:     "loud",
		LogFormat:    "xml",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	msg := err.Error()
	for _, field := range []string{"SERVER_PORT", "STORE_DRIVER", "SEARCH_LIMIT", "PASSWORD_MODE", "LOG_LEVEL", "LOG_FORMAT"} {
		assert.True(t, strings.Contains(msg, field), "missing %s in %q", field, msg)
	}
}

func TestValidateConfigDriverRequirements(t *testing.T) {
	base := Config{ServerPort: "5000", SearchLimit: 5, PasswordMode: PasswordPlaintext, LogLevel: "info"}

	for driver, field := range map[string]string{
		DriverMongo:    "MONGO_URI",
		DriverPostgres: "DATABASE_URL",
		DriverSQLite:   "DATABASE_URL",
		DriverFile:     "RECIPES_FILE",
	} {
		cfg := base
		cfg.StoreDriver = driver
		cfg.MongoDatabase = "recipes"
		err := ValidateConfig(&cfg)
		assert.ErrorContains(t, err, field, driver)
	}
}

func TestPresignGet(t *testing.T) {
	client := s3.New(s3.Options{
		Region: "us-east-1",
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "AKID", SecretAccessKey: "SECRET"}, nil
		}),
	})
	s := &S3Config{Client: client, BucketName: "transcripts-bucket"}

	url, err := s.PresignGet(context.Background(), "transcripts/abc/1.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "transcripts-bucket")
	assert.Contains(t, url, "transcripts/abc/1.pdf")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestNewS3ConfigRequiresBucket(t *testing.T) {
	_, err := NewS3Config(context.Background(), "", "us-east-1")
	assert.Error(t, err)
}
