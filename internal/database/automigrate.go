package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// migrationOrder lists the domain models parent-first so foreign keys always
// have their target tables
var migrationOrder = []modelInfo{
	{&domain.User{}, "users"},
	{&domain.Group{}, "groups"},
	{&domain.Post{}, "posts"},
	{&domain.Comment{}, "comments"},
	{&domain.Follow{}, "follows"},
}

// AutoMigrate runs GORM auto-migration for all domain models. Tables,
// indexes and foreign key constraints come from the struct definitions in
// the domain package.
func AutoMigrate(db *gorm.DB) error {
	models := make([]interface{}, 0, len(migrationOrder))
	for _, m := range migrationOrder {
		models = append(models, m.model)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate runs GORM auto-migration one table at a time, logging
// whether each table was created or only updated. Existing tables only get
// schema differences applied.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	logger.Info("Starting safe auto-migration",
		zap.Int("total_models", len(migrationOrder)),
	)

	for _, m := range migrationOrder {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	logger.Info("Safe auto-migration completed successfully",
		zap.Int("tables_migrated", len(migrationOrder)),
	)

	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate with retry logic, backing
// off linearly between attempts
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoffDuration := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoffDuration),
				zap.Error(err),
			)
			time.Sleep(backoffDuration)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
