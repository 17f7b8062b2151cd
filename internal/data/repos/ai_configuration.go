package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type AiConfigurationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cfg *domain.AiConfiguration) (*domain.AiConfiguration, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.AiConfiguration, error)
	// GetActiveByOrganization returns the newest active configuration
	// scoped to the given organization, or nil when none exists.
	GetActiveByOrganization(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID) (*domain.AiConfiguration, error)
	// GetActiveGlobal returns the newest active configuration with no
	// organization scope, or nil when none exists.
	GetActiveGlobal(ctx context.Context, tx *gorm.DB) (*domain.AiConfiguration, error)
}

type aiConfigurationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAiConfigurationRepo(db *gorm.DB, baseLog *logger.Logger) AiConfigurationRepo {
	return &aiConfigurationRepo{db: db, log: baseLog.With("repo", "AiConfigurationRepo")}
}

func (r *aiConfigurationRepo) Create(ctx context.Context, tx *gorm.DB, cfg *domain.AiConfiguration) (*domain.AiConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *aiConfigurationRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.AiConfiguration{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *aiConfigurationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.AiConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var cfg domain.AiConfiguration
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *aiConfigurationRepo) GetActiveByOrganization(ctx context.Context, tx *gorm.DB, organizationID uuid.UUID) (*domain.AiConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var cfg domain.AiConfiguration
	if err := transaction.WithContext(ctx).
		Where("organization_id = ? AND active = ?", organizationID, true).
		Order("created_at DESC").
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *aiConfigurationRepo) GetActiveGlobal(ctx context.Context, tx *gorm.DB) (*domain.AiConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var cfg domain.AiConfiguration
	if err := transaction.WithContext(ctx).
		Where("organization_id IS NULL AND active = ?", true).
		Order("created_at DESC").
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}
