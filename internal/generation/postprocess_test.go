package generation

import (
	"context"
	"strings"
	"testing"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
)

func TestWordCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"  hello   world  ", 2},
		{"line\nbreaks\tand spaces", 4},
	}
	for _, tc := range cases {
		if got := WordCount(tc.in); got != tc.want {
			t.Fatalf("WordCount(%q): got=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestProcessRespectsConfigToggles(t *testing.T) {
	t.Parallel()

	p := NewPostProcessor(testLogger(t), NewHeuristicScorer(), NewKeywordComplianceChecker())
	content := "Our team has delivered similar work under contract with three agencies."

	full := &domain.AiConfiguration{EnableConfidenceScoring: true, EnableComplianceCheck: true}
	res, err := p.Process(context.Background(), full, "past_performance", content, Context{}, Params{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.ConfidenceScore == nil {
		t.Fatal("confidence score missing with scoring enabled")
	}
	if res.ComplianceIssues == nil {
		t.Fatal("compliance issues must be non-nil")
	}

	off := &domain.AiConfiguration{}
	res, err = p.Process(context.Background(), off, "past_performance", content, Context{}, Params{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.ConfidenceScore != nil {
		t.Fatal("confidence score present with scoring disabled")
	}
	if len(res.ComplianceIssues) != 0 {
		t.Fatalf("compliance issues with check disabled: %v", res.ComplianceIssues)
	}
	if res.WordCount != WordCount(content) {
		t.Fatalf("word count: got=%d want=%d", res.WordCount, WordCount(content))
	}
}

func TestHeuristicScorerBounds(t *testing.T) {
	t.Parallel()

	s := NewHeuristicScorer()

	short, err := s.Score(context.Background(), "tiny", Context{Truncated: true}, Params{WordCountMin: 500})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	rich, err := s.Score(context.Background(), strings.Repeat("word ", 300), Context{
		Sources:                []string{"library:a"},
		ReferenceProposalCount: 2,
	}, Params{WordCountMin: 100, WordCountMax: 400})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if short < 0 || short > 1 || rich < 0 || rich > 1 {
		t.Fatalf("scores out of range: short=%f rich=%f", short, rich)
	}
	if rich <= short {
		t.Fatalf("well-grounded content should score higher: short=%f rich=%f", short, rich)
	}
}

func TestComplianceCheckerFlagsPlaceholders(t *testing.T) {
	t.Parallel()

	c := NewKeywordComplianceChecker()

	issues, err := c.Check(context.Background(), "executive_summary", "We will [INSERT agency name] deliver value. TBD.")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("issues: got=%v want 2 entries", issues)
	}

	issues, err = c.Check(context.Background(), "pricing_narrative", "Our approach keeps total cost low.")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}

	issues, err = c.Check(context.Background(), "pricing_narrative", "We price competitively.")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("missing required-term issue: %v", issues)
	}
}
