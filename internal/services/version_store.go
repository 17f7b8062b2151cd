package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

const archiveChangeSummary = "Saved before AI regeneration"

// SectionWrite carries one piece of new section content into the store.
type SectionWrite struct {
	ProposalID         uuid.UUID
	SectionType        string
	Content            string
	WordCount          int
	PromptUsed         string
	ReferenceSources   []string
	ContextSummary     string
	GenerationMetadata map[string]interface{}
	ChangedByEmail     string
	ChangedByName      string
	ChangeSummary      string
}

// SectionSave reports what the store did: the live section row, the
// history version the new content landed at, and the change type
// recorded for it.
type SectionSave struct {
	Section    *domain.GeneratedSection
	Version    int
	ChangeType string
}

// VersionStore persists generated content atomically: archive the
// previous content (when any), upsert the live section row, and append
// the new content to history, all in one transaction. Either everything
// lands or nothing does. Concurrent writers for the same section
// serialize on a row lock; losers of a remaining race surface
// repos.ErrVersionConflict from the history unique index.
type VersionStore struct {
	db       *gorm.DB
	log      *logger.Logger
	sections repos.GeneratedSectionRepo
	history  repos.SectionHistoryRepo
}

func NewVersionStore(db *gorm.DB, log *logger.Logger, sections repos.GeneratedSectionRepo, history repos.SectionHistoryRepo) *VersionStore {
	return &VersionStore{
		db:       db,
		log:      log.With("service", "VersionStore"),
		sections: sections,
		history:  history,
	}
}

func (s *VersionStore) Save(ctx context.Context, w SectionWrite) (*SectionSave, error) {
	var out SectionSave

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.sections.GetByProposalAndType(ctx, tx, w.ProposalID, w.SectionType, true)
		if err != nil {
			return err
		}

		latest := 0
		if existing != nil {
			latest, err = s.history.LatestVersion(ctx, tx, existing.ID)
			if err != nil {
				return err
			}
		}

		changeType := domain.ChangeTypeAIGenerated
		if existing != nil {
			changeType = domain.ChangeTypeAIRegenerated
		}

		if existing != nil && strings.TrimSpace(existing.Content) != "" {
			latest++
			archive := &domain.SectionHistory{
				ID:             uuid.New(),
				SectionID:      existing.ID,
				VersionNumber:  latest,
				Content:        existing.Content,
				ChangedByEmail: w.ChangedByEmail,
				ChangedByName:  w.ChangedByName,
				ChangeSummary:  archiveChangeSummary,
				WordCount:      existing.WordCount,
				ChangeType:     domain.ChangeTypeUserEdit,
			}
			if _, err := s.history.Create(ctx, tx, archive); err != nil {
				return err
			}
		}

		newVersion := latest + 1

		sources, err := json.Marshal(w.ReferenceSources)
		if err != nil {
			return err
		}
		metadata, err := json.Marshal(w.GenerationMetadata)
		if err != nil {
			return err
		}

		var section *domain.GeneratedSection
		if existing != nil {
			updates := map[string]interface{}{
				"content":             w.Content,
				"word_count":          w.WordCount,
				"status":              domain.SectionStatusAIGenerated,
				"prompt_used":         w.PromptUsed,
				"reference_sources":   datatypes.JSON(sources),
				"context_summary":     w.ContextSummary,
				"generation_metadata": datatypes.JSON(metadata),
				"current_version":     newVersion,
			}
			if err := s.sections.Update(ctx, tx, existing.ID, updates); err != nil {
				return err
			}
			existing.Content = w.Content
			existing.WordCount = w.WordCount
			existing.Status = domain.SectionStatusAIGenerated
			existing.PromptUsed = w.PromptUsed
			existing.ReferenceSources = datatypes.JSON(sources)
			existing.ContextSummary = w.ContextSummary
			existing.GenerationMetadata = datatypes.JSON(metadata)
			existing.CurrentVersion = newVersion
			section = existing
		} else {
			section = &domain.GeneratedSection{
				ID:                 uuid.New(),
				ProposalID:         w.ProposalID,
				SectionType:        w.SectionType,
				Content:            w.Content,
				WordCount:          w.WordCount,
				Status:             domain.SectionStatusAIGenerated,
				PromptUsed:         w.PromptUsed,
				ReferenceSources:   datatypes.JSON(sources),
				ContextSummary:     w.ContextSummary,
				GenerationMetadata: datatypes.JSON(metadata),
				CurrentVersion:     newVersion,
			}
			if _, err := s.sections.Create(ctx, tx, section); err != nil {
				return err
			}
		}

		summary := w.ChangeSummary
		if summary == "" {
			summary = "AI generated content"
		}
		record := &domain.SectionHistory{
			ID:             uuid.New(),
			SectionID:      section.ID,
			VersionNumber:  newVersion,
			Content:        w.Content,
			ChangedByEmail: w.ChangedByEmail,
			ChangedByName:  w.ChangedByName,
			ChangeSummary:  summary,
			WordCount:      w.WordCount,
			ChangeType:     changeType,
		}
		if _, err := s.history.Create(ctx, tx, record); err != nil {
			return err
		}

		out = SectionSave{Section: section, Version: newVersion, ChangeType: changeType}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveUserEdit appends a manual edit as the next version and updates
// the live row, sharing the transaction shape of Save but without the
// archive step: the edited text itself becomes the new snapshot.
func (s *VersionStore) SaveUserEdit(ctx context.Context, sectionID uuid.UUID, content, email, name string) (*SectionSave, error) {
	var out SectionSave

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		section, err := s.sections.GetByID(ctx, tx, sectionID)
		if err != nil {
			return err
		}
		if section == nil {
			return gorm.ErrRecordNotFound
		}
		// Re-fetch under lock so concurrent writers serialize.
		section, err = s.sections.GetByProposalAndType(ctx, tx, section.ProposalID, section.SectionType, true)
		if err != nil {
			return err
		}

		latest, err := s.history.LatestVersion(ctx, tx, section.ID)
		if err != nil {
			return err
		}
		newVersion := latest + 1
		wordCount := len(strings.Fields(content))

		updates := map[string]interface{}{
			"content":         content,
			"word_count":      wordCount,
			"status":          domain.SectionStatusUserEdited,
			"current_version": newVersion,
		}
		if err := s.sections.Update(ctx, tx, section.ID, updates); err != nil {
			return err
		}
		section.Content = content
		section.WordCount = wordCount
		section.Status = domain.SectionStatusUserEdited
		section.CurrentVersion = newVersion

		record := &domain.SectionHistory{
			ID:             uuid.New(),
			SectionID:      section.ID,
			VersionNumber:  newVersion,
			Content:        content,
			ChangedByEmail: email,
			ChangedByName:  name,
			ChangeSummary:  "Manual edit",
			WordCount:      wordCount,
			ChangeType:     domain.ChangeTypeUserEdit,
		}
		if _, err := s.history.Create(ctx, tx, record); err != nil {
			return err
		}

		out = SectionSave{Section: section, Version: newVersion, ChangeType: domain.ChangeTypeUserEdit}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
