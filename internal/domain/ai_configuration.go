package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AiConfiguration is a named bundle of generation defaults, scoped to an
// organization or global when OrganizationID is NULL. Resolution prefers
// the newest active org-scoped row, then the newest active global row.
type AiConfiguration struct {
	ID                      uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ConfigName              string         `gorm:"column:config_name;not null" json:"config_name"`
	OrganizationID          *uuid.UUID     `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	LLMProvider             string         `gorm:"column:llm_provider;not null;default:'openai'" json:"llm_provider"`
	Model                   string         `gorm:"column:model" json:"model"`
	DefaultTone             string         `gorm:"column:default_tone;default:'professional'" json:"default_tone"`
	DefaultWordCountMin     int            `gorm:"column:default_word_count_min;default:200" json:"default_word_count_min"`
	DefaultWordCountMax     int            `gorm:"column:default_word_count_max;default:800" json:"default_word_count_max"`
	ReadingLevel            string         `gorm:"column:reading_level;default:'professional'" json:"reading_level"`
	Temperature             float64        `gorm:"column:temperature;default:0.7" json:"temperature"`
	EnableConfidenceScoring bool           `gorm:"column:enable_confidence_scoring;default:false" json:"enable_confidence_scoring"`
	EnableComplianceCheck   bool           `gorm:"column:enable_compliance_check;default:false" json:"enable_compliance_check"`
	Active                  bool           `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt               time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AiConfiguration) TableName() string { return "ai_configuration" }
