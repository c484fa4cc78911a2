package database

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/estatehub-api/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

// Open connects to the database named by dbURL. A "sqlite://<path>" URL
// selects SQLite (used for local runs and tests); anything else is handed to
// the Postgres driver.
func Open(dbURL string, logLevel string) (*gorm.DB, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	// Configure GORM logger
	newLogger := logger.New(
		log.New(utils.Logger.Writer(), "", 0),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseLogLevel(logLevel),
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector(dbURL), &gorm.Config{
		Logger: newLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	if IsSQLite(db) {
		// SQLite serialises writers; one connection keeps :memory: databases shared.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	var version string
	if IsSQLite(db) {
		db.Raw("SELECT sqlite_version()").Scan(&version)
	} else {
		db.Raw("SELECT version()").Scan(&version)
	}
	utils.Logger.WithField("version", version).Info("Connected to database")

	return db, nil
}

// Close releases the pooled connections behind db
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		utils.Logger.WithError(err).Warn("Failed to close database")
	}
}

// IsSQLite reports whether db is backed by the SQLite driver
func IsSQLite(db *gorm.DB) bool {
	return db.Dialector.Name() == "sqlite"
}

func dialector(dbURL string) gorm.Dialector {
	if strings.HasPrefix(dbURL, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(dbURL, sqlitePrefix))
	}
	return postgres.Open(dbURL)
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
