package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/apierr"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

// SectionService reads section content and records manual edits. It
// also feeds the context aggregator with the proposal's current
// sections.
type SectionService interface {
	ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]*domain.GeneratedSection, error)
	History(ctx context.Context, sectionID uuid.UUID) ([]*domain.SectionHistory, error)
	EditContent(ctx context.Context, sectionID uuid.UUID, content, editorEmail, editorName string) (*domain.GeneratedSection, error)

	CurrentSections(ctx context.Context, proposalID uuid.UUID) ([]*domain.GeneratedSection, error)
}

type sectionService struct {
	db       *gorm.DB
	log      *logger.Logger
	sections repos.GeneratedSectionRepo
	history  repos.SectionHistoryRepo
	store    *VersionStore
}

func NewSectionService(db *gorm.DB, log *logger.Logger, sections repos.GeneratedSectionRepo, history repos.SectionHistoryRepo, store *VersionStore) SectionService {
	return &sectionService{
		db:       db,
		log:      log.With("service", "SectionService"),
		sections: sections,
		history:  history,
		store:    store,
	}
}

func (s *sectionService) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]*domain.GeneratedSection, error) {
	results, err := s.sections.ListByProposal(ctx, nil, proposalID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return results, nil
}

func (s *sectionService) History(ctx context.Context, sectionID uuid.UUID) ([]*domain.SectionHistory, error) {
	section, err := s.sections.GetByID(ctx, nil, sectionID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if section == nil {
		return nil, apierr.NotFound(fmt.Errorf("section not found"))
	}
	records, err := s.history.ListBySection(ctx, nil, sectionID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return records, nil
}

func (s *sectionService) EditContent(ctx context.Context, sectionID uuid.UUID, content, editorEmail, editorName string) (*domain.GeneratedSection, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apierr.Validation(fmt.Errorf("content is required"))
	}
	save, err := s.store.SaveUserEdit(ctx, sectionID, content, editorEmail, editorName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("section not found"))
		}
		if errors.Is(err, repos.ErrVersionConflict) {
			return nil, apierr.Conflict(err)
		}
		return nil, apierr.Internal(err)
	}
	return save.Section, nil
}

func (s *sectionService) CurrentSections(ctx context.Context, proposalID uuid.UUID) ([]*domain.GeneratedSection, error) {
	return s.sections.ListByProposal(ctx, nil, proposalID)
}
