package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"chatstore/internal/infrastructure/database/entities"
)

// Indexes backing the tenant-scoped, time-ordered listings. Created with
// IF NOT EXISTS so bootstrap stays safe when several processes race at start.
var schemaIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_items_thread_owner_created
		ON items (thread_id, owner_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_threads_owner_created
		ON threads (owner_id, created_at DESC)`,
}

// AutoMigrate ensures the store schema exists. It runs on every process start
// and must succeed before any repository operation; a failure here aborts
// startup.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.Thread{},
		&entities.Item{},
		&entities.Attachment{},
	); err != nil {
		return err
	}

	for _, stmt := range schemaIndexes {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}

	log.Info().Msg("database schema up to date")
	return nil
}
