package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProposal(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) *domain.Proposal {
	tb.Helper()
	p := &domain.Proposal{
		ID:          uuid.New(),
		OwnerUserID: ownerID,
		Title:       "Network Modernization",
		Agency:      "GSA",
		Status:      domain.ProposalStatusDraft,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed proposal: %v", err)
	}
	return p
}

func SeedAiConfiguration(tb testing.TB, ctx context.Context, tx *gorm.DB, orgID *uuid.UUID) *domain.AiConfiguration {
	tb.Helper()
	cfg := &domain.AiConfiguration{
		ID:                      uuid.New(),
		OrganizationID:          orgID,
		LLMProvider:             "openai",
		Model:                   "gpt-4o",
		DefaultTone:             "professional",
		DefaultWordCountMin:     200,
		DefaultWordCountMax:     600,
		Temperature:             0.7,
		EnableConfidenceScoring: true,
		EnableComplianceCheck:   true,
		Active:                  true,
	}
	if err := tx.WithContext(ctx).Create(cfg).Error; err != nil {
		tb.Fatalf("seed ai configuration: %v", err)
	}
	return cfg
}

func SeedSection(tb testing.TB, ctx context.Context, tx *gorm.DB, proposalID uuid.UUID, sectionType, content string) *domain.GeneratedSection {
	tb.Helper()
	sec := &domain.GeneratedSection{
		ID:          uuid.New(),
		ProposalID:  proposalID,
		SectionType: sectionType,
		Content:     content,
		WordCount:   len(content) / 5,
		Status:      domain.SectionStatusAIGenerated,
	}
	if err := tx.WithContext(ctx).Create(sec).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return sec
}

func SeedLibraryAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, orgID *uuid.UUID, kind, sectionType string) *domain.LibraryAsset {
	tb.Helper()
	asset := &domain.LibraryAsset{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Title:          "Reference",
		Kind:           kind,
		SectionType:    sectionType,
		Content:        "Reference content for testing.",
	}
	if err := tx.WithContext(ctx).Create(asset).Error; err != nil {
		tb.Fatalf("seed library asset: %v", err)
	}
	return asset
}
