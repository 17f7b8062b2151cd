package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/apierr"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type CreateAssetInput struct {
	Title       string         `json:"title" binding:"required"`
	Kind        string         `json:"kind" binding:"required"`
	SectionType string         `json:"section_type"`
	Agency      string         `json:"agency"`
	Content     string         `json:"content" binding:"required"`
	Tags        datatypes.JSON `json:"tags"`
	Won         bool           `json:"won"`
}

var validAssetKinds = map[string]bool{
	domain.AssetKindBoilerplate:  true,
	domain.AssetKindPastProposal: true,
	domain.AssetKindTemplate:     true,
}

// LibraryService manages the content library and feeds the context
// aggregator with ranked reference material.
type LibraryService interface {
	Create(ctx context.Context, organizationID *uuid.UUID, input CreateAssetInput) (*domain.LibraryAsset, error)
	List(ctx context.Context, organizationID *uuid.UUID, kind, sectionType string) ([]*domain.LibraryAsset, error)
	MarkUsed(ctx context.Context, ids []uuid.UUID) error

	RankedReferences(ctx context.Context, proposal *domain.Proposal, sectionType string, limit int) ([]*domain.LibraryAsset, error)
	Boilerplate(ctx context.Context, organizationID *uuid.UUID, limit int) ([]*domain.LibraryAsset, error)
}

type libraryService struct {
	db        *gorm.DB
	log       *logger.Logger
	assets    repos.LibraryAssetRepo
	relevance RelevanceService
}

func NewLibraryService(db *gorm.DB, log *logger.Logger, assets repos.LibraryAssetRepo, relevance RelevanceService) LibraryService {
	return &libraryService{
		db:        db,
		log:       log.With("service", "LibraryService"),
		assets:    assets,
		relevance: relevance,
	}
}

func (s *libraryService) Create(ctx context.Context, organizationID *uuid.UUID, input CreateAssetInput) (*domain.LibraryAsset, error) {
	if !validAssetKinds[input.Kind] {
		return nil, apierr.Validation(fmt.Errorf("invalid asset kind %q", input.Kind))
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, apierr.Validation(fmt.Errorf("content is required"))
	}
	asset := &domain.LibraryAsset{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Title:          strings.TrimSpace(input.Title),
		Kind:           input.Kind,
		SectionType:    input.SectionType,
		Agency:         strings.TrimSpace(input.Agency),
		Content:        input.Content,
		Tags:           input.Tags,
		Won:            input.Won,
	}
	if _, err := s.assets.Create(ctx, nil, asset); err != nil {
		return nil, apierr.Internal(err)
	}
	return asset, nil
}

func (s *libraryService) List(ctx context.Context, organizationID *uuid.UUID, kind, sectionType string) ([]*domain.LibraryAsset, error) {
	results, err := s.assets.ListForOrganization(ctx, nil, organizationID, kind, sectionType, 0)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return results, nil
}

func (s *libraryService) MarkUsed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return s.assets.IncrementUseCount(ctx, nil, ids)
}

func (s *libraryService) RankedReferences(ctx context.Context, proposal *domain.Proposal, sectionType string, limit int) ([]*domain.LibraryAsset, error) {
	scored, err := s.relevance.Rank(ctx, proposal, sectionType, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.LibraryAsset, 0, len(scored))
	for _, sa := range scored {
		out = append(out, sa.Asset)
	}
	return out, nil
}

func (s *libraryService) Boilerplate(ctx context.Context, organizationID *uuid.UUID, limit int) ([]*domain.LibraryAsset, error) {
	return s.assets.ListForOrganization(ctx, nil, organizationID, domain.AssetKindBoilerplate, "", limit)
}
