package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipe-chatbot/backend/config"
	"github.com/pageza/recipe-chatbot/backend/internal/api"
	"github.com/pageza/recipe-chatbot/backend/internal/database"
	"github.com/pageza/recipe-chatbot/backend/internal/history"
	"github.com/pageza/recipe-chatbot/backend/internal/logging"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
	"github.com/pageza/recipe-chatbot/backend/internal/server"
	"github.com/pageza/recipe-chatbot/backend/internal/service"
	"github.com/pageza/recipe-chatbot/backend/internal/transcript"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: !cfg.IsProduction(),
	})
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	st, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("Failed to close store", zap.Error(err))
		}
	}()

	var hist history.Store = history.NewMemoryStore()
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()
		hist = history.NewRedisStore(client, cfg.HistoryTTL)
	} else {
		logger.Info("REDIS_URL not set, keeping chat history in memory")
	}

	var router *search.Router
	if cfg.ClassifierURL != "" {
		router = search.NewRouter(search.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierAPIKey, cfg.ClassifierTimeout), nil)
	}

	var sharer *transcript.Sharer
	if cfg.S3BucketName != "" {
		objects, err := config.NewS3Config(ctx, cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			logger.Fatal("Failed to configure S3", zap.Error(err))
		}
		sharer = transcript.NewSharer(objects, cfg.TranscriptURLTTL)
	}

	recipes := service.NewRecipeService(st, router, cfg.SearchLimit, logger)
	srv := server.New(cfg, api.Deps{
		Recipes:       recipes,
		Auth:          service.NewAuthService(st, cfg.PasswordMode, logger),
		Chat:          service.NewChatService(recipes, hist, sharer, logger),
		Store:         st,
		ExposeDetails: !cfg.IsProduction(),
	}, logger)

	if err := srv.Start(); err != nil {
		logger.Error("Server error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
