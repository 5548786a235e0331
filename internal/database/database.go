// Package database opens the configured store backend.
package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pageza/recipe-chatbot/backend/config"
	"github.com/pageza/recipe-chatbot/backend/internal/store"
	"github.com/pageza/recipe-chatbot/backend/internal/store/gormdb"
	"github.com/pageza/recipe-chatbot/backend/internal/store/memory"
	"github.com/pageza/recipe-chatbot/backend/internal/store/mongodb"
)

// Open connects to the backend named by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		s, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
		return s, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := OpenGorm(cfg.StoreDriver, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		s, err := gormdb.New(db)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to SQL database", zap.String("driver", cfg.StoreDriver))
		return s, nil

	case config.DriverFile:
		s, err := memory.LoadFile(cfg.RecipesFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded recipes file", zap.String("path", cfg.RecipesFile))
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// OpenGorm opens a GORM connection with unique violations translated to
// gorm.ErrDuplicatedKey and SQL logging routed through logger.
func OpenGorm(driver, dsn string, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(logger), gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == config.DriverPostgres {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}
	return db, nil
}
