package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

// Relevance weights. Section-type match dominates, then agency match,
// then a win bonus; recency and tag overlap break ties.
const (
	weightSectionMatch = 0.40
	weightAgencyMatch  = 0.25
	weightWonBonus     = 0.15
	weightRecency      = 0.10
	weightTagOverlap   = 0.10

	recencyHalfLifeDays = 365
	candidatePoolLimit  = 50
)

type ScoredAsset struct {
	Asset *domain.LibraryAsset `json:"asset"`
	Score float64              `json:"score"`
}

type RelevanceService interface {
	// Rank scores past-proposal assets visible to the proposal's
	// organization against the section being written and returns the
	// top matches, best first.
	Rank(ctx context.Context, proposal *domain.Proposal, sectionType string, limit int) ([]ScoredAsset, error)
}

type relevanceService struct {
	db     *gorm.DB
	log    *logger.Logger
	assets repos.LibraryAssetRepo
	now    func() time.Time
}

func NewRelevanceService(db *gorm.DB, log *logger.Logger, assets repos.LibraryAssetRepo) RelevanceService {
	return &relevanceService{
		db:     db,
		log:    log.With("service", "RelevanceService"),
		assets: assets,
		now:    time.Now,
	}
}

func (s *relevanceService) Rank(ctx context.Context, proposal *domain.Proposal, sectionType string, limit int) ([]ScoredAsset, error) {
	candidates, err := s.assets.ListForOrganization(ctx, nil, proposal.OrganizationID, domain.AssetKindPastProposal, "", candidatePoolLimit)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredAsset, 0, len(candidates))
	for _, asset := range candidates {
		if strings.TrimSpace(asset.Content) == "" {
			continue
		}
		scored = append(scored, ScoredAsset{Asset: asset, Score: s.score(proposal, sectionType, asset)})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (s *relevanceService) score(proposal *domain.Proposal, sectionType string, asset *domain.LibraryAsset) float64 {
	score := 0.0
	if asset.SectionType != "" && strings.EqualFold(asset.SectionType, sectionType) {
		score += weightSectionMatch
	}
	if asset.Agency != "" && strings.EqualFold(asset.Agency, proposal.Agency) {
		score += weightAgencyMatch
	}
	if asset.Won {
		score += weightWonBonus
	}

	ageDays := s.now().Sub(asset.CreatedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	score += weightRecency * (recencyHalfLifeDays / (recencyHalfLifeDays + ageDays))

	score += weightTagOverlap * tagOverlap(asset.Tags, proposal)
	return score
}

// tagOverlap returns the fraction of asset tags that appear in the
// proposal title or summary.
func tagOverlap(raw datatypes.JSON, proposal *domain.Proposal) float64 {
	if len(raw) == 0 {
		return 0
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || len(tags) == 0 {
		return 0
	}
	haystack := strings.ToLower(proposal.Title + " " + proposal.Summary)
	matched := 0
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" && strings.Contains(haystack, tag) {
			matched++
		}
	}
	return float64(matched) / float64(len(tags))
}
