package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type GeneratedSectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, section *domain.GeneratedSection) (*domain.GeneratedSection, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.GeneratedSection, error)
	// GetByProposalAndType returns the current section for the pair, or
	// nil when none exists. With forUpdate the row is locked for the
	// duration of the surrounding transaction.
	GetByProposalAndType(ctx context.Context, tx *gorm.DB, proposalID uuid.UUID, sectionType string, forUpdate bool) (*domain.GeneratedSection, error)
	ListByProposal(ctx context.Context, tx *gorm.DB, proposalID uuid.UUID) ([]*domain.GeneratedSection, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type generatedSectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneratedSectionRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedSectionRepo {
	return &generatedSectionRepo{db: db, log: baseLog.With("repo", "GeneratedSectionRepo")}
}

func (r *generatedSectionRepo) Create(ctx context.Context, tx *gorm.DB, section *domain.GeneratedSection) (*domain.GeneratedSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

func (r *generatedSectionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.GeneratedSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var section domain.GeneratedSection
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *generatedSectionRepo) GetByProposalAndType(ctx context.Context, tx *gorm.DB, proposalID uuid.UUID, sectionType string, forUpdate bool) (*domain.GeneratedSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Where("proposal_id = ? AND section_type = ?", proposalID, sectionType)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var section domain.GeneratedSection
	if err := query.First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *generatedSectionRepo) ListByProposal(ctx context.Context, tx *gorm.DB, proposalID uuid.UUID) ([]*domain.GeneratedSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.GeneratedSection
	if err := transaction.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("section_type ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *generatedSectionRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.GeneratedSection{}).
		Where("id = ?", id).
		Updates(updates).Error
}
