package generation

import (
	"context"
	"strings"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ConfidenceScorer rates generated content in [0, 1].
type ConfidenceScorer interface {
	Score(ctx context.Context, content string, genctx Context, params Params) (float64, error)
}

// ComplianceChecker reports compliance issues found in generated content.
type ComplianceChecker interface {
	Check(ctx context.Context, sectionType string, content string) ([]string, error)
}

type PostResult struct {
	WordCount        int
	ConfidenceScore  *float64
	ComplianceIssues []string
}

// PostProcessor computes word count and, when the resolved configuration
// enables them, confidence and compliance results. Collaborator outputs
// are threaded through unchanged.
type PostProcessor struct {
	log     *logger.Logger
	scorer  ConfidenceScorer
	checker ComplianceChecker
}

func NewPostProcessor(log *logger.Logger, scorer ConfidenceScorer, checker ComplianceChecker) *PostProcessor {
	return &PostProcessor{
		log:     log.With("component", "PostProcessor"),
		scorer:  scorer,
		checker: checker,
	}
}

func (p *PostProcessor) Process(ctx context.Context, cfg *domain.AiConfiguration, sectionType string, content string, genctx Context, params Params) (PostResult, error) {
	out := PostResult{
		WordCount:        WordCount(content),
		ComplianceIssues: []string{},
	}

	if cfg.EnableConfidenceScoring && p.scorer != nil {
		score, err := p.scorer.Score(ctx, content, genctx, params)
		if err != nil {
			return PostResult{}, err
		}
		out.ConfidenceScore = &score
	}

	if cfg.EnableComplianceCheck && p.checker != nil {
		issues, err := p.checker.Check(ctx, sectionType, content)
		if err != nil {
			return PostResult{}, err
		}
		if issues != nil {
			out.ComplianceIssues = issues
		}
	}

	return out, nil
}
