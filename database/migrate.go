package database

import (
	"fmt"

	"github.com/estatehub-api/models"
	"github.com/estatehub-api/utils"
	"gorm.io/gorm"
)

// Migrate migrates the database schema. On Postgres it also tries to enable
// pg_trgm; a failure there is only logged and search runs in substring mode.
func Migrate(db *gorm.DB) error {
	utils.Logger.Info("Migrating database schema...")

	if !IsSQLite(db) {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error; err != nil {
			utils.Logger.WithError(err).Warn("pg_trgm unavailable, fuzzy search will use substring fallback")
		}
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	utils.Logger.Info("Database schema migrated")
	return nil
}
