package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos/testutil"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
)

func TestGeneratedSectionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewGeneratedSectionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "sectionrepo@example.com")
	p := testutil.SeedProposal(t, ctx, tx, u.ID)

	sec := &domain.GeneratedSection{
		ID:          uuid.New(),
		ProposalID:  p.ID,
		SectionType: "executive_summary",
		Content:     "draft",
		WordCount:   1,
		Status:      domain.SectionStatusAIGenerated,
	}
	if _, err := repo.Create(ctx, tx, sec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByProposalAndType(ctx, tx, p.ID, "executive_summary", false)
	if err != nil || got == nil || got.ID != sec.ID {
		t.Fatalf("GetByProposalAndType: err=%v got=%+v", err, got)
	}
	if got, err := repo.GetByProposalAndType(ctx, tx, p.ID, "missing_type", false); err != nil || got != nil {
		t.Fatalf("GetByProposalAndType missing: err=%v got=%+v", err, got)
	}

	locked, err := repo.GetByProposalAndType(ctx, tx, p.ID, "executive_summary", true)
	if err != nil || locked == nil {
		t.Fatalf("GetByProposalAndType forUpdate: err=%v got=%+v", err, locked)
	}

	if err := repo.Update(ctx, tx, sec.ID, map[string]interface{}{"content": "updated", "current_version": 2}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, sec.ID)
	if err != nil || got == nil || got.Content != "updated" || got.CurrentVersion != 2 {
		t.Fatalf("after Update: err=%v got=%+v", err, got)
	}

	testutil.SeedSection(t, ctx, tx, p.ID, "technical_approach", "another")
	rows, err := repo.ListByProposal(ctx, tx, p.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByProposal: err=%v len=%d", err, len(rows))
	}

	// One live row per (proposal, section type).
	dup := &domain.GeneratedSection{
		ID:          uuid.New(),
		ProposalID:  p.ID,
		SectionType: "executive_summary",
		Status:      domain.SectionStatusAIGenerated,
	}
	if _, err := repo.Create(ctx, tx, dup); err == nil {
		t.Fatal("duplicate (proposal, section type) must violate unique index")
	}
}

func TestSectionHistoryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewSectionHistoryRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "historyrepo@example.com")
	p := testutil.SeedProposal(t, ctx, tx, u.ID)
	sec := testutil.SeedSection(t, ctx, tx, p.ID, "executive_summary", "content")

	if v, err := repo.LatestVersion(ctx, tx, sec.ID); err != nil || v != 0 {
		t.Fatalf("LatestVersion empty: err=%v v=%d", err, v)
	}

	for i := 1; i <= 3; i++ {
		rec := &domain.SectionHistory{
			ID:            uuid.New(),
			SectionID:     sec.ID,
			VersionNumber: i,
			Content:       "v",
			ChangeType:    domain.ChangeTypeAIGenerated,
		}
		if _, err := repo.Create(ctx, tx, rec); err != nil {
			t.Fatalf("Create v%d: %v", i, err)
		}
	}

	if v, err := repo.LatestVersion(ctx, tx, sec.ID); err != nil || v != 3 {
		t.Fatalf("LatestVersion: err=%v v=%d", err, v)
	}

	rows, err := repo.ListBySection(ctx, tx, sec.ID)
	if err != nil || len(rows) != 3 {
		t.Fatalf("ListBySection: err=%v len=%d", err, len(rows))
	}
	for i, rec := range rows {
		if rec.VersionNumber != i+1 {
			t.Fatalf("not ordered ascending: index=%d version=%d", i, rec.VersionNumber)
		}
	}

	// A concurrent writer landing on the same version number surfaces
	// ErrVersionConflict from the unique index.
	clash := &domain.SectionHistory{
		ID:            uuid.New(),
		SectionID:     sec.ID,
		VersionNumber: 3,
		Content:       "late writer",
		ChangeType:    domain.ChangeTypeAIRegenerated,
	}
	_, err = repo.Create(ctx, tx, clash)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("want ErrVersionConflict, got %v", err)
	}
}
