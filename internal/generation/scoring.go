package generation

import (
	"context"
	"fmt"
	"strings"
)

// HeuristicScorer is the default confidence collaborator: a weighted
// blend of length fit, reference grounding, and truncation penalty.
type HeuristicScorer struct{}

func NewHeuristicScorer() *HeuristicScorer { return &HeuristicScorer{} }

func (s *HeuristicScorer) Score(_ context.Context, content string, genctx Context, params Params) (float64, error) {
	score := 0.5

	words := WordCount(content)
	minWords := params.WordCountMin
	maxWords := params.WordCountMax
	switch {
	case minWords > 0 && words < minWords:
		score += 0.2 * float64(words) / float64(minWords)
	case maxWords > 0 && words > maxWords:
		score += 0.1
	default:
		score += 0.2
	}

	if genctx.ReferenceProposalCount > 0 {
		score += 0.15
	}
	if len(genctx.Sources) > 0 {
		score += 0.05
	}
	if genctx.Truncated {
		score -= 0.1
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}

// placeholder markers that should never survive into delivered content.
var bannedFragments = []string{
	"lorem ipsum",
	"[insert",
	"[todo",
	"tbd",
	"xxx",
}

// requiredFragments per section type; content missing one is flagged.
var requiredFragments = map[string][]string{
	"past_performance":  {"contract"},
	"pricing_narrative": {"cost"},
}

// KeywordComplianceChecker is the default compliance collaborator. It
// flags placeholder fragments and missing section-required terms.
type KeywordComplianceChecker struct{}

func NewKeywordComplianceChecker() *KeywordComplianceChecker { return &KeywordComplianceChecker{} }

func (c *KeywordComplianceChecker) Check(_ context.Context, sectionType string, content string) ([]string, error) {
	issues := []string{}
	lower := strings.ToLower(content)

	for _, frag := range bannedFragments {
		if strings.Contains(lower, frag) {
			issues = append(issues, fmt.Sprintf("placeholder text %q found in content", frag))
		}
	}
	for _, frag := range requiredFragments[sectionType] {
		if !strings.Contains(lower, frag) {
			issues = append(issues, fmt.Sprintf("expected %q to be mentioned in %s", frag, sectionType))
		}
	}
	return issues, nil
}
