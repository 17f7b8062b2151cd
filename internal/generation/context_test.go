package generation

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
)

type stubSectionSource struct {
	sections []*domain.GeneratedSection
	err      error
}

func (s *stubSectionSource) CurrentSections(context.Context, uuid.UUID) ([]*domain.GeneratedSection, error) {
	return s.sections, s.err
}

type stubLibrarySource struct {
	refs   []*domain.LibraryAsset
	boiler []*domain.LibraryAsset
}

func (s *stubLibrarySource) RankedReferences(_ context.Context, _ *domain.Proposal, _ string, limit int) ([]*domain.LibraryAsset, error) {
	if limit < len(s.refs) {
		return s.refs[:limit], nil
	}
	return s.refs, nil
}

func (s *stubLibrarySource) Boilerplate(_ context.Context, _ *uuid.UUID, limit int) ([]*domain.LibraryAsset, error) {
	if limit < len(s.boiler) {
		return s.boiler[:limit], nil
	}
	return s.boiler, nil
}

func TestAggregatePrioritizesAndRecordsProvenance(t *testing.T) {
	t.Parallel()

	proposal := &domain.Proposal{ID: uuid.New(), Title: "Modernization"}
	ref := &domain.LibraryAsset{ID: uuid.New(), Title: "Past win", Content: "We delivered on time."}
	boiler := &domain.LibraryAsset{ID: uuid.New(), Title: "About us", Content: "Founded in 2001."}

	sections := &stubSectionSource{sections: []*domain.GeneratedSection{
		{SectionType: "technical_approach", Content: "We use agile."},
		{SectionType: "executive_summary", Content: "should be excluded"},
		{SectionType: "pricing_narrative", Content: "   "},
	}}
	library := &stubLibrarySource{refs: []*domain.LibraryAsset{ref}, boiler: []*domain.LibraryAsset{boiler}}

	a := NewAggregator(testLogger(t), sections, library)
	got, err := a.Aggregate(context.Background(), proposal, "executive_summary")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	wantSources := []string{
		"section:technical_approach",
		"library:" + ref.ID.String(),
		"boilerplate:" + boiler.ID.String(),
	}
	if len(got.Sources) != len(wantSources) {
		t.Fatalf("sources: got=%v want=%v", got.Sources, wantSources)
	}
	for i, w := range wantSources {
		if got.Sources[i] != w {
			t.Fatalf("source %d: got=%q want=%q", i, got.Sources[i], w)
		}
	}

	// Priority order: prior sections, then references, then boilerplate.
	idxSection := strings.Index(got.ReferenceContent, "Existing section: technical_approach")
	idxRef := strings.Index(got.ReferenceContent, "Reference proposal: Past win")
	idxBoiler := strings.Index(got.ReferenceContent, "Organization boilerplate: About us")
	if idxSection < 0 || idxRef < 0 || idxBoiler < 0 || !(idxSection < idxRef && idxRef < idxBoiler) {
		t.Fatalf("priority order violated: section=%d ref=%d boiler=%d", idxSection, idxRef, idxBoiler)
	}

	if strings.Contains(got.ReferenceContent, "should be excluded") {
		t.Fatal("target section's own content must be excluded")
	}
	if got.ReferenceProposalCount != 1 {
		t.Fatalf("reference proposal count: got=%d want=1", got.ReferenceProposalCount)
	}
	if !strings.HasPrefix(got.Summary, "Context built from") {
		t.Fatalf("summary: %q", got.Summary)
	}
	if got.Truncated {
		t.Fatal("fresh context must not be truncated")
	}
}

func TestAggregateEmptySources(t *testing.T) {
	t.Parallel()

	a := NewAggregator(testLogger(t), &stubSectionSource{}, &stubLibrarySource{})
	got, err := a.Aggregate(context.Background(), &domain.Proposal{ID: uuid.New()}, "executive_summary")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got.ReferenceContent != "" || len(got.Sources) != 0 {
		t.Fatalf("expected empty context, got %+v", got)
	}
	if got.Summary != "no reference material available" {
		t.Fatalf("summary: %q", got.Summary)
	}
}

func TestAggregateClipsLongMaterial(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("z", maxPriorSectionChars+500)
	sections := &stubSectionSource{sections: []*domain.GeneratedSection{
		{SectionType: "technical_approach", Content: long},
	}}
	a := NewAggregator(testLogger(t), sections, &stubLibrarySource{})

	got, err := a.Aggregate(context.Background(), &domain.Proposal{ID: uuid.New()}, "executive_summary")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if strings.Count(got.ReferenceContent, "z") > maxPriorSectionChars {
		t.Fatal("prior section content not clipped")
	}
}

func TestClipRespectsRuneBoundaries(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("\u65e5", 10) // 30 bytes of 3-byte runes
	got := clip(s, 8)
	if !utf8.ValidString(got) {
		t.Fatalf("clipped string is not valid UTF-8: %q", got)
	}
	if len(got) != 6 {
		t.Fatalf("clip length: got=%d want=6", len(got))
	}
	if got := clip(s, 30); got != s {
		t.Fatal("string at the limit must be returned unchanged")
	}
}
