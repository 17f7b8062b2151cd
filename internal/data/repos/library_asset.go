package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type LibraryAssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, asset *domain.LibraryAsset) (*domain.LibraryAsset, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.LibraryAsset, error)
	// ListForOrganization returns assets visible to the organization:
	// org-scoped rows plus global rows (NULL organization_id). Kind and
	// sectionType filter when non-empty.
	ListForOrganization(ctx context.Context, tx *gorm.DB, organizationID *uuid.UUID, kind, sectionType string, limit int) ([]*domain.LibraryAsset, error)
	IncrementUseCount(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type libraryAssetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLibraryAssetRepo(db *gorm.DB, baseLog *logger.Logger) LibraryAssetRepo {
	return &libraryAssetRepo{db: db, log: baseLog.With("repo", "LibraryAssetRepo")}
}

func (r *libraryAssetRepo) Create(ctx context.Context, tx *gorm.DB, asset *domain.LibraryAsset) (*domain.LibraryAsset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

func (r *libraryAssetRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.LibraryAsset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var asset domain.LibraryAsset
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (r *libraryAssetRepo) ListForOrganization(ctx context.Context, tx *gorm.DB, organizationID *uuid.UUID, kind, sectionType string, limit int) ([]*domain.LibraryAsset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx)
	if organizationID != nil {
		query = query.Where("organization_id = ? OR organization_id IS NULL", *organizationID)
	} else {
		query = query.Where("organization_id IS NULL")
	}
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if sectionType != "" {
		query = query.Where("section_type = ?", sectionType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*domain.LibraryAsset
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *libraryAssetRepo) IncrementUseCount(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.LibraryAsset{}).
		Where("id IN ?", ids).
		UpdateColumn("use_count", gorm.Expr("use_count + 1")).Error
}
