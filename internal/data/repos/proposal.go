package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type ProposalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, proposal *domain.Proposal) (*domain.Proposal, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Proposal, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerUserID uuid.UUID) ([]*domain.Proposal, error)
	ListByOrganization(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID) ([]*domain.Proposal, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type proposalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProposalRepo(db *gorm.DB, baseLog *logger.Logger) ProposalRepo {
	return &proposalRepo{db: db, log: baseLog.With("repo", "ProposalRepo")}
}

func (r *proposalRepo) Create(ctx context.Context, tx *gorm.DB, proposal *domain.Proposal) (*domain.Proposal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(proposal).Error; err != nil {
		return nil, err
	}
	return proposal, nil
}

func (r *proposalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Proposal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var proposal domain.Proposal
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerUserID uuid.UUID) ([]*domain.Proposal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.Proposal
	if err := transaction.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *proposalRepo) ListByOrganization(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID) ([]*domain.Proposal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.Proposal
	if err := transaction.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *proposalRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.Proposal{}).
		Where("id = ?", id).
		Updates(updates).Error
}
