package db

import (
	"fmt"

	types "github.com/yungbote/lifeline-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := ensureUserEmailIndex(db); err != nil {
		return err
	}
	return EnsureReportingIndexes(db)
}

// ensureUserEmailIndex keeps emails unique among users that are not soft
// deleted, so a removed account's address can register again. The plain
// index from older schemas is dropped first.
func ensureUserEmailIndex(db *gorm.DB) error {
	stmts := []string{
		`DROP INDEX IF EXISTS idx_users_email`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_live ON users (email) WHERE deleted_at IS NULL`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("user email index: %w", err)
		}
	}
	return nil
}

// EnsureReportingIndexes adds the composite indexes the inventory and
// dashboard reads lean on. Both dialects accept this syntax.
func EnsureReportingIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_blood_inventory_status_type ON blood_inventory (status, blood_type)`,
		`CREATE INDEX IF NOT EXISTS idx_blood_requests_status ON blood_requests (status)`,
		`CREATE INDEX IF NOT EXISTS idx_users_role_status ON users (role, status)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
