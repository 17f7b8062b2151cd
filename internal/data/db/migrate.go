package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&domain.User{},

		// Proposal pipeline
		&domain.Proposal{},

		// AI generation
		&domain.AiConfiguration{},
		&domain.GeneratedSection{},
		&domain.SectionHistory{},
		&domain.AICallLog{},

		// Content library
		&domain.LibraryAsset{},
	)
}

// EnsureIndexes creates the indexes AutoMigrate cannot express the way we
// need them. Safe to re-run.
func EnsureIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_section_history_section_id ON section_history(section_id);`).Error; err != nil {
		return fmt.Errorf("create idx_section_history_section_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_library_asset_org_kind ON library_asset(organization_id, kind);`).Error; err != nil {
		return fmt.Errorf("create idx_library_asset_org_kind: %w", err)
	}
	return nil
}
