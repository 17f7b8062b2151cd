package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Proposal pipeline stages.
const (
	ProposalStatusCapture   = "capture"
	ProposalStatusDraft     = "draft"
	ProposalStatusReview    = "review"
	ProposalStatusSubmitted = "submitted"
	ProposalStatusWon       = "won"
	ProposalStatusLost      = "lost"
)

type Proposal struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID     *uuid.UUID     `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	OwnerUserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	Title              string         `gorm:"column:title;not null" json:"title"`
	Agency             string         `gorm:"column:agency" json:"agency"`
	SolicitationNumber string         `gorm:"column:solicitation_number" json:"solicitation_number"`
	Status             string         `gorm:"column:status;not null;default:'capture'" json:"status"`
	DueDate            *time.Time     `gorm:"column:due_date" json:"due_date,omitempty"`
	Summary            string         `gorm:"column:summary;type:text" json:"summary"`
	Metadata           datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Proposal) TableName() string { return "proposal" }
