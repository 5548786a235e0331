package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipe-chatbot/backend/config"
	"github.com/pageza/recipe-chatbot/backend/internal/database"
	"github.com/pageza/recipe-chatbot/backend/internal/logging"
	"github.com/pageza/recipe-chatbot/backend/internal/service"
	"github.com/pageza/recipe-chatbot/backend/internal/store/memory"
)

func main() {
	file := flag.String("file", "recipes.json", "JSON array of recipes to load")
	timeout := flag.Duration("timeout", 5*time.Minute, "give up after this long")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StoreDriver == config.DriverFile {
		log.Fatalf("STORE_DRIVER=%s reads recipes at startup; nothing to seed", cfg.StoreDriver)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Development: !cfg.IsProduction()})
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	recipes, err := memory.ReadRecipes(*file)
	if err != nil {
		logger.Fatal("Failed to read recipes", zap.Error(err))
	}

	st, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to store", zap.Error(err))
	}
	defer func() { _ = st.Close(context.Background()) }()

	n, err := service.NewRecipeService(st, nil, cfg.SearchLimit, logger).Seed(ctx, recipes)
	if err != nil {
		logger.Error("Seeding incomplete", zap.Int("inserted", n), zap.Error(err))
		return
	}
	logger.Info("Seeded recipes", zap.Int("inserted", n), zap.Int("read", len(recipes)), zap.String("file", *file))
}
