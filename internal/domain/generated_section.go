package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SectionStatusAIGenerated = "ai_generated"
	SectionStatusUserEdited  = "user_edited"
)

// GeneratedSection is the single current row of proposal content per
// (proposal, section type). Prior content lives in SectionHistory.
type GeneratedSection struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProposalID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_generated_section_proposal_type" json:"proposal_id"`
	SectionType        string         `gorm:"column:section_type;not null;uniqueIndex:idx_generated_section_proposal_type" json:"section_type"`
	Content            string         `gorm:"column:content;type:text" json:"content"`
	WordCount          int            `gorm:"column:word_count" json:"word_count"`
	Status             string         `gorm:"column:status;not null;default:'ai_generated'" json:"status"`
	PromptUsed         string         `gorm:"column:prompt_used;type:text" json:"prompt_used"`
	ReferenceSources   datatypes.JSON `gorm:"column:reference_sources;type:jsonb" json:"reference_sources"`
	ContextSummary     string         `gorm:"column:context_summary;type:text" json:"context_summary"`
	GenerationMetadata datatypes.JSON `gorm:"column:generation_metadata;type:jsonb" json:"generation_metadata"`
	CurrentVersion     int            `gorm:"column:current_version;not null;default:0" json:"current_version"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (GeneratedSection) TableName() string { return "generated_section" }
