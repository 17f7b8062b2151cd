package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type AICallLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *domain.AICallLog) (*domain.AICallLog, error)
	ListByProposal(ctx context.Context, tx *gorm.DB, proposalID uuid.UUID, limit int) ([]*domain.AICallLog, error)
}

type aiCallLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAICallLogRepo(db *gorm.DB, baseLog *logger.Logger) AICallLogRepo {
	return &aiCallLogRepo{db: db, log: baseLog.With("repo", "AICallLogRepo")}
}

func (r *aiCallLogRepo) Create(ctx context.Context, tx *gorm.DB, record *domain.AICallLog) (*domain.AICallLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *aiCallLogRepo) ListByProposal(ctx context.Context, tx *gorm.DB, proposalID uuid.UUID, limit int) ([]*domain.AICallLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*domain.AICallLog
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
