package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

// ErrVersionConflict is returned when a history insert collides with an
// existing version number for the same section. Callers run inside a
// transaction and should surface this as a persistence conflict.
var ErrVersionConflict = errors.New("section history version conflict")

type SectionHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *domain.SectionHistory) (*domain.SectionHistory, error)
	ListBySection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*domain.SectionHistory, error)
	// LatestVersion returns the highest version number recorded for the
	// section, or 0 when no history exists.
	LatestVersion(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) (int, error)
}

type sectionHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionHistoryRepo(db *gorm.DB, baseLog *logger.Logger) SectionHistoryRepo {
	return &sectionHistoryRepo{db: db, log: baseLog.With("repo", "SectionHistoryRepo")}
}

func (r *sectionHistoryRepo) Create(ctx context.Context, tx *gorm.DB, record *domain.SectionHistory) (*domain.SectionHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrVersionConflict
		}
		return nil, err
	}
	return record, nil
}

func (r *sectionHistoryRepo) ListBySection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*domain.SectionHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*domain.SectionHistory
	if err := transaction.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("version_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sectionHistoryRepo) LatestVersion(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var latest int
	if err := transaction.WithContext(ctx).
		Model(&domain.SectionHistory{}).
		Where("section_id = ?", sectionID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&latest).Error; err != nil {
		return 0, err
	}
	return latest, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
