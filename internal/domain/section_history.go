package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChangeTypeUserEdit      = "user_edit"
	ChangeTypeAIGenerated   = "ai_generated"
	ChangeTypeAIRegenerated = "ai_regenerated"
)

// SectionHistory is an append-only, version-numbered snapshot of a
// section's content. Versions are contiguous per section starting at 1;
// the unique index backs that invariant. Rows are never updated.
type SectionHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_section_history_version" json:"section_id"`
	VersionNumber  int       `gorm:"column:version_number;not null;uniqueIndex:idx_section_history_version" json:"version_number"`
	Content        string    `gorm:"column:content;type:text" json:"content"`
	ChangedByEmail string    `gorm:"column:changed_by_email" json:"changed_by_email"`
	ChangedByName  string    `gorm:"column:changed_by_name" json:"changed_by_name"`
	ChangeSummary  string    `gorm:"column:change_summary" json:"change_summary"`
	WordCount      int       `gorm:"column:word_count" json:"word_count"`
	ChangeType     string    `gorm:"column:change_type;not null" json:"change_type"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (SectionHistory) TableName() string { return "section_history" }
