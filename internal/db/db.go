package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqliteScheme = "sqlite://"

// New creates a new database connection.
func New(cfg *config.Config) (*gorm.DB, error) {
	return connectToDatabaseWithRetry(cfg.EnvVars.DatabaseUrl)
}

// dialectorFor picks the driver from the URL: sqlite:// paths open a local file,
// anything else is treated as a postgres DSN.
func dialectorFor(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, sqliteScheme) {
		return sqlite.Open(strings.TrimPrefix(databaseURL, sqliteScheme))
	}
	return postgres.Open(databaseURL)
}

// connectToDatabaseWithRetry connects to the database and retries if necessary.
func connectToDatabaseWithRetry(databaseURL string) (*gorm.DB, error) {
	logger.Get().Info("connecting to database", zap.Bool("sqlite", strings.HasPrefix(databaseURL, sqliteScheme)))
	var database *gorm.DB
	var err error

	start := time.Now()
	for {
		database, err = gorm.Open(dialectorFor(databaseURL), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Since(start) > 1*time.Minute {
			return nil, fmt.Errorf("could not connect to database after 1 minute: %w", err)
		}
		logger.Get().Warn("could not connect to database, retrying...", zap.Error(err))
		time.Sleep(5 * time.Second)
	}

	if err := database.AutoMigrate(&models.Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshots: %w", err)
	}

	return database, nil
}
