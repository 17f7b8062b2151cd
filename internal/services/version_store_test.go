package services

import (
	"context"
	"testing"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos/testutil"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
)

func TestVersionStoreSaveLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	sections := repos.NewGeneratedSectionRepo(tx, log)
	history := repos.NewSectionHistoryRepo(tx, log)
	store := NewVersionStore(tx, log, sections, history)

	u := testutil.SeedUser(t, ctx, tx, "versionstore@example.com")
	p := testutil.SeedProposal(t, ctx, tx, u.ID)

	write := SectionWrite{
		ProposalID:     p.ID,
		SectionType:    "executive_summary",
		Content:        "First generated draft.",
		WordCount:      3,
		PromptUsed:     "prompt-1",
		ContextSummary: "no reference material available",
		ChangedByEmail: u.Email,
		ChangedByName:  u.FullName(),
	}

	// First generation: no prior section.
	first, err := store.Save(ctx, write)
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if first.Version != 1 || first.ChangeType != domain.ChangeTypeAIGenerated {
		t.Fatalf("first save: version=%d changeType=%q", first.Version, first.ChangeType)
	}

	// Regeneration: prior content is archived before being replaced.
	write.Content = "Second generated draft."
	write.PromptUsed = "prompt-2"
	second, err := store.Save(ctx, write)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second.Version != 3 || second.ChangeType != domain.ChangeTypeAIRegenerated {
		t.Fatalf("second save: version=%d changeType=%q", second.Version, second.ChangeType)
	}
	if second.Section.ID != first.Section.ID {
		t.Fatal("regeneration must reuse the section row")
	}

	records, err := history.ListBySection(ctx, tx, first.Section.ID)
	if err != nil {
		t.Fatalf("ListBySection: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("history entries: got=%d want=3", len(records))
	}
	for i, rec := range records {
		if rec.VersionNumber != i+1 {
			t.Fatalf("versions not contiguous: index=%d version=%d", i, rec.VersionNumber)
		}
	}
	if records[1].Content != "First generated draft." || records[1].ChangeType != domain.ChangeTypeUserEdit {
		t.Fatalf("archive entry wrong: %+v", records[1])
	}
	if records[1].ChangeSummary != "Saved before AI regeneration" {
		t.Fatalf("archive summary: %q", records[1].ChangeSummary)
	}
	if records[2].Content != "Second generated draft." {
		t.Fatalf("new entry content: %q", records[2].Content)
	}

	// Live content always equals the highest-numbered history entry.
	sec, err := sections.GetByID(ctx, tx, first.Section.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if sec.Content != records[len(records)-1].Content {
		t.Fatal("live content diverged from latest history entry")
	}
	if sec.CurrentVersion != 3 {
		t.Fatalf("current version: got=%d want=3", sec.CurrentVersion)
	}

	// Manual edit appends the edited text as the next version.
	edit, err := store.SaveUserEdit(ctx, sec.ID, "Hand-tuned final text.", u.Email, u.FullName())
	if err != nil {
		t.Fatalf("SaveUserEdit: %v", err)
	}
	if edit.Version != 4 || edit.ChangeType != domain.ChangeTypeUserEdit {
		t.Fatalf("edit: version=%d changeType=%q", edit.Version, edit.ChangeType)
	}
	if edit.Section.Status != domain.SectionStatusUserEdited {
		t.Fatalf("edit status: %q", edit.Section.Status)
	}

	latest, err := history.LatestVersion(ctx, tx, sec.ID)
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if latest != 4 {
		t.Fatalf("latest version: got=%d want=4", latest)
	}
}

func TestVersionStoreRegenerateOverEmptySection(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	sections := repos.NewGeneratedSectionRepo(tx, log)
	history := repos.NewSectionHistoryRepo(tx, log)
	store := NewVersionStore(tx, log, sections, history)

	u := testutil.SeedUser(t, ctx, tx, "emptysection@example.com")
	p := testutil.SeedProposal(t, ctx, tx, u.ID)
	testutil.SeedSection(t, ctx, tx, p.ID, "technical_approach", "")

	save, err := store.Save(ctx, SectionWrite{
		ProposalID:  p.ID,
		SectionType: "technical_approach",
		Content:     "Fresh content.",
		WordCount:   2,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	// An empty prior section is not archived.
	if save.Version != 1 {
		t.Fatalf("version: got=%d want=1", save.Version)
	}
	if save.ChangeType != domain.ChangeTypeAIRegenerated {
		t.Fatalf("changeType: got=%q", save.ChangeType)
	}
	records, err := history.ListBySection(ctx, tx, save.Section.ID)
	if err != nil {
		t.Fatalf("ListBySection: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("history entries: got=%d want=1", len(records))
	}
}
