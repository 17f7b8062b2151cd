package generation

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
)

//go:embed templates.yaml
var templatesYAML []byte

type sectionTemplate struct {
	Title    string `yaml:"title"`
	Guidance string `yaml:"guidance"`
}

type templateRegistry struct {
	System   string                     `yaml:"system"`
	Sections map[string]sectionTemplate `yaml:"sections"`
}

// PromptBuilder renders configuration, proposal details, and aggregated
// context into a single prompt string. Build is pure and deterministic:
// identical inputs produce byte-identical output, which lets a retry
// reproduce a smaller prompt after context truncation.
type PromptBuilder struct {
	registry templateRegistry
}

func NewPromptBuilder() (*PromptBuilder, error) {
	var reg templateRegistry
	if err := yaml.Unmarshal(templatesYAML, &reg); err != nil {
		return nil, fmt.Errorf("parse prompt templates: %w", err)
	}
	if _, ok := reg.Sections["default"]; !ok {
		return nil, fmt.Errorf("prompt templates missing default section")
	}
	return &PromptBuilder{registry: reg}, nil
}

// System returns the shared system prompt.
func (b *PromptBuilder) System() string {
	return strings.TrimSpace(b.registry.System)
}

func (b *PromptBuilder) Build(cfg *domain.AiConfiguration, sectionType string, proposal *domain.Proposal, genctx Context, params Params) string {
	tpl, ok := b.registry.Sections[sectionType]
	if !ok {
		tpl = b.registry.Sections["default"]
	}

	tone := params.Tone
	if tone == "" {
		tone = cfg.DefaultTone
	}
	if tone == "" {
		tone = "professional"
	}
	minWords := params.WordCountMin
	if minWords <= 0 {
		minWords = cfg.DefaultWordCountMin
	}
	maxWords := params.WordCountMax
	if maxWords <= 0 {
		maxWords = cfg.DefaultWordCountMax
	}
	readingLevel := params.ReadingLevel
	if readingLevel == "" {
		readingLevel = cfg.ReadingLevel
	}
	if readingLevel == "" {
		readingLevel = "professional"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write the \"%s\" section of a government proposal.\n\n", tpl.Title)

	sb.WriteString("# Proposal\n")
	fmt.Fprintf(&sb, "Title: %s\n", proposal.Title)
	if proposal.Agency != "" {
		fmt.Fprintf(&sb, "Agency: %s\n", proposal.Agency)
	}
	if proposal.SolicitationNumber != "" {
		fmt.Fprintf(&sb, "Solicitation: %s\n", proposal.SolicitationNumber)
	}
	if proposal.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", proposal.Summary)
	}

	if genctx.ReferenceContent != "" {
		sb.WriteString("\n# Reference material\n")
		sb.WriteString(genctx.ReferenceContent)
		sb.WriteString("\n")
	}
	if genctx.Truncated {
		sb.WriteString("\nNote: reference material was truncated to fit the model's input budget.\n")
	}

	sb.WriteString("\n# Requirements\n")
	fmt.Fprintf(&sb, "- Section focus: %s\n", strings.TrimSpace(tpl.Guidance))
	fmt.Fprintf(&sb, "- Tone: %s\n", tone)
	fmt.Fprintf(&sb, "- Length: between %d and %d words\n", minWords, maxWords)
	fmt.Fprintf(&sb, "- Reading level: %s\n", readingLevel)
	sb.WriteString("- Ground every claim in the reference material; do not invent facts.\n")
	sb.WriteString("- Return only the section prose, no headings or commentary.\n")

	return sb.String()
}
