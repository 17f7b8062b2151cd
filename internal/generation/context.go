package generation

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

// SectionSource supplies the proposal's current sections.
type SectionSource interface {
	CurrentSections(ctx context.Context, proposalID uuid.UUID) ([]*domain.GeneratedSection, error)
}

// LibrarySource supplies relevance-ranked reference assets and
// organization boilerplate.
type LibrarySource interface {
	RankedReferences(ctx context.Context, proposal *domain.Proposal, sectionType string, limit int) ([]*domain.LibraryAsset, error)
	Boilerplate(ctx context.Context, organizationID *uuid.UUID, limit int) ([]*domain.LibraryAsset, error)
}

const (
	maxReferenceAssets   = 3
	maxBoilerplateAssets = 2
	maxPriorSectionChars = 1200
	maxAssetChars        = 2400
)

// Aggregator collects and prioritizes the source material needed to
// write one proposal section: prior sections of the same proposal,
// relevance-ranked past-proposal assets, then organization boilerplate.
// Every included piece gets a provenance entry and a summary line.
type Aggregator struct {
	log      *logger.Logger
	sections SectionSource
	library  LibrarySource
}

func NewAggregator(log *logger.Logger, sections SectionSource, library LibrarySource) *Aggregator {
	return &Aggregator{
		log:      log.With("component", "ContextAggregator"),
		sections: sections,
		library:  library,
	}
}

func (a *Aggregator) Aggregate(ctx context.Context, proposal *domain.Proposal, sectionType string) (Context, error) {
	var (
		parts    []string
		sources  []string
		summary  []string
		refCount int
	)

	prior, err := a.sections.CurrentSections(ctx, proposal.ID)
	if err != nil {
		return Context{}, fmt.Errorf("load prior sections: %w", err)
	}
	priorUsed := 0
	for _, sec := range prior {
		if sec.SectionType == sectionType || strings.TrimSpace(sec.Content) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("## Existing section: %s\n%s", sec.SectionType, clip(sec.Content, maxPriorSectionChars)))
		sources = append(sources, "section:"+sec.SectionType)
		priorUsed++
	}
	if priorUsed > 0 {
		summary = append(summary, fmt.Sprintf("%d existing proposal section(s)", priorUsed))
	}

	refs, err := a.library.RankedReferences(ctx, proposal, sectionType, maxReferenceAssets)
	if err != nil {
		return Context{}, fmt.Errorf("load reference assets: %w", err)
	}
	for _, asset := range refs {
		parts = append(parts, fmt.Sprintf("## Reference proposal: %s\n%s", asset.Title, clip(asset.Content, maxAssetChars)))
		sources = append(sources, "library:"+asset.ID.String())
		refCount++
	}
	if refCount > 0 {
		summary = append(summary, fmt.Sprintf("%d reference proposal(s)", refCount))
	}

	boiler, err := a.library.Boilerplate(ctx, proposal.OrganizationID, maxBoilerplateAssets)
	if err != nil {
		return Context{}, fmt.Errorf("load boilerplate: %w", err)
	}
	boilerUsed := 0
	for _, asset := range boiler {
		parts = append(parts, fmt.Sprintf("## Organization boilerplate: %s\n%s", asset.Title, clip(asset.Content, maxAssetChars)))
		sources = append(sources, "boilerplate:"+asset.ID.String())
		boilerUsed++
	}
	if boilerUsed > 0 {
		summary = append(summary, fmt.Sprintf("%d boilerplate item(s)", boilerUsed))
	}

	summaryText := "no reference material available"
	if len(summary) > 0 {
		summaryText = "Context built from " + strings.Join(summary, ", ")
	}

	a.log.Debug("context aggregated",
		"proposal_id", proposal.ID.String(),
		"section_type", sectionType,
		"sources", len(sources),
		"reference_proposals", refCount,
	)

	return Context{
		ReferenceContent:       strings.Join(parts, "\n\n"),
		Sources:                sources,
		Summary:                summaryText,
		ReferenceProposalCount: refCount,
	}, nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
