package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AssetKindBoilerplate  = "boilerplate"
	AssetKindPastProposal = "past_proposal"
	AssetKindTemplate     = "template"
)

// LibraryAsset is reusable content-library material: organization
// boilerplate, past proposal sections, and templates. The context
// aggregator draws reference material from here.
type LibraryAsset struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID *uuid.UUID     `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Kind           string         `gorm:"column:kind;not null;index" json:"kind"`
	SectionType    string         `gorm:"column:section_type;index" json:"section_type"`
	Agency         string         `gorm:"column:agency" json:"agency"`
	Content        string         `gorm:"column:content;type:text" json:"content"`
	Tags           datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	Won            bool           `gorm:"column:won;default:false" json:"won"`
	UseCount       int            `gorm:"column:use_count;not null;default:0" json:"use_count"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LibraryAsset) TableName() string { return "library_asset" }
