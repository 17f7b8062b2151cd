package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AICallLog records one LLM invocation attempt, successful or not.
type AICallLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ProposalID *uuid.UUID     `gorm:"type:uuid;index" json:"proposal_id,omitempty"`
	CallType   string         `gorm:"column:call_type;not null" json:"call_type"`
	Model      string         `gorm:"column:model" json:"model"`
	Prompt     string         `gorm:"column:prompt;type:text" json:"prompt"`
	Response   string         `gorm:"column:response;type:text" json:"response"`
	Success    bool           `gorm:"column:success;not null" json:"success"`
	Error      string         `gorm:"column:error" json:"error"`
	Attempt    int            `gorm:"column:attempt;not null;default:1" json:"attempt"`
	Usage      datatypes.JSON `gorm:"column:usage;type:jsonb" json:"usage"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (AICallLog) TableName() string { return "ai_call_log" }
