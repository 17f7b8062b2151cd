package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/generation"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/apierr"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/openai"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/realtime"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/realtime/bus"
)

const callTypeSectionGeneration = "section_generation"

type GenerateRequest struct {
	ProposalID     uuid.UUID
	SectionType    string
	Params         generation.Params
	UserID         *uuid.UUID
	UserEmail      string
	UserName       string
	AgentTriggered bool
}

type GenerateResult struct {
	SectionID        uuid.UUID
	Content          string
	WordCount        int
	ConfidenceScore  *float64
	ComplianceIssues []string
	SourcesUsed      []string
	ContextSummary   string
	ConfigUsed       string
	Attempts         int
	Version          int
}

// WriterService runs the full content pipeline for one section:
// aggregate context, build the prompt, drive the LLM attempt loop,
// post-process the output, and persist it with version history.
type WriterService interface {
	GenerateSection(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

type writerService struct {
	db         *gorm.DB
	log        *logger.Logger
	proposals  repos.ProposalRepo
	callLogs   repos.AICallLogRepo
	aiConfigs  AiConfigService
	library    LibraryService
	aggregator *generation.Aggregator
	prompts    *generation.PromptBuilder
	post       *generation.PostProcessor
	llm        openai.Client
	store      *VersionStore
	events     bus.Bus
}

func NewWriterService(
	db *gorm.DB,
	log *logger.Logger,
	proposals repos.ProposalRepo,
	callLogs repos.AICallLogRepo,
	aiConfigs AiConfigService,
	library LibraryService,
	aggregator *generation.Aggregator,
	prompts *generation.PromptBuilder,
	post *generation.PostProcessor,
	llm openai.Client,
	store *VersionStore,
	events bus.Bus,
) WriterService {
	return &writerService{
		db:         db,
		log:        log.With("service", "WriterService"),
		proposals:  proposals,
		callLogs:   callLogs,
		aiConfigs:  aiConfigs,
		library:    library,
		aggregator: aggregator,
		prompts:    prompts,
		post:       post,
		llm:        llm,
		store:      store,
		events:     events,
	}
}

func (s *writerService) GenerateSection(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	proposal, err := s.proposals.GetByID(ctx, nil, req.ProposalID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if proposal == nil {
		return nil, apierr.NotFound(fmt.Errorf("proposal not found"))
	}

	cfg, err := s.aiConfigs.Resolve(ctx, proposal.OrganizationID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeGenerationFailed, ErrAiConfigMissing)
	}

	genctx, err := s.aggregator.Aggregate(ctx, proposal, req.SectionType)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	channel := realtime.ProposalChannel(proposal.ID.String())
	s.publish(ctx, channel, realtime.SSEEventGenerationStarted, map[string]any{
		"proposal_id":  proposal.ID,
		"section_type": req.SectionType,
	})

	llm := openai.WithTemperature(openai.WithModel(s.llm, cfg.Model), cfg.Temperature)
	orch := generation.NewOrchestrator(s.log, llm, generation.OrchestratorConfig{
		Observer: s.attemptObserver(ctx, req, proposal, cfg, channel),
	})

	result, err := orch.Run(ctx, s.prompts.System(), genctx, func(c generation.Context) string {
		return s.prompts.Build(cfg, req.SectionType, proposal, c, req.Params)
	})
	if err != nil {
		s.publish(ctx, channel, realtime.SSEEventGenerationFailed, map[string]any{
			"proposal_id":  proposal.ID,
			"section_type": req.SectionType,
			"error":        err.Error(),
		})
		var exhausted *generation.ExhaustedError
		if errors.As(err, &exhausted) {
			s.log.Error("generation exhausted", "proposal_id", proposal.ID.String(), "section_type", req.SectionType, "attempts", exhausted.Attempts, "error", exhausted.Last)
		}
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeGenerationFailed, err)
	}

	post, err := s.post.Process(ctx, cfg, req.SectionType, result.Content, result.Context, req.Params)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	metadata := map[string]interface{}{
		"model":            cfg.Model,
		"provider":         cfg.LLMProvider,
		"temperature":      cfg.Temperature,
		"attempts":         result.Attempts,
		"truncated":        result.Context.Truncated,
		"tokens_estimated": len(result.Prompt) / 4,
		"generated_at":     time.Now().UTC().Format(time.RFC3339),
		"agent_triggered":  req.AgentTriggered,
	}
	if post.ConfidenceScore != nil {
		metadata["confidence_score"] = *post.ConfidenceScore
	}
	if len(post.ComplianceIssues) > 0 {
		metadata["compliance_issues"] = post.ComplianceIssues
	}

	save, err := s.store.Save(ctx, SectionWrite{
		ProposalID:         proposal.ID,
		SectionType:        req.SectionType,
		Content:            result.Content,
		WordCount:          post.WordCount,
		PromptUsed:         result.Prompt,
		ReferenceSources:   result.Context.Sources,
		ContextSummary:     result.Context.Summary,
		GenerationMetadata: metadata,
		ChangedByEmail:     req.UserEmail,
		ChangedByName:      req.UserName,
	})
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodePersistenceFailed, err)
	}

	s.markAssetsUsed(ctx, result.Context.Sources)

	s.publish(ctx, channel, realtime.SSEEventGenerationSucceeded, map[string]any{
		"proposal_id":  proposal.ID,
		"section_type": req.SectionType,
		"section_id":   save.Section.ID,
		"version":      save.Version,
		"word_count":   post.WordCount,
	})
	s.publish(ctx, channel, realtime.SSEEventSectionUpdated, map[string]any{
		"proposal_id": proposal.ID,
		"section_id":  save.Section.ID,
	})

	return &GenerateResult{
		SectionID:        save.Section.ID,
		Content:          result.Content,
		WordCount:        post.WordCount,
		ConfidenceScore:  post.ConfidenceScore,
		ComplianceIssues: post.ComplianceIssues,
		SourcesUsed:      result.Context.Sources,
		ContextSummary:   result.Context.Summary,
		ConfigUsed:       cfg.Model,
		Attempts:         result.Attempts,
		Version:          save.Version,
	}, nil
}

// ErrAiConfigMissing reports that neither the organization nor the
// platform has an active AI configuration.
var ErrAiConfigMissing = errors.New("no active ai configuration")

// attemptObserver logs every LLM attempt and publishes progress events.
// Logging is best-effort; a failed insert never fails the pipeline.
func (s *writerService) attemptObserver(ctx context.Context, req GenerateRequest, proposal *domain.Proposal, cfg *domain.AiConfiguration, channel string) generation.AttemptObserver {
	return func(attempt int, prompt string, content string, err error) {
		record := &domain.AICallLog{
			ID:         uuid.New(),
			UserID:     req.UserID,
			ProposalID: &proposal.ID,
			CallType:   callTypeSectionGeneration,
			Model:      cfg.Model,
			Prompt:     prompt,
			Response:   content,
			Success:    err == nil,
			Attempt:    attempt,
		}
		if err != nil {
			record.Error = err.Error()
		}
		if usage, merr := json.Marshal(map[string]int{"prompt_chars": len(prompt), "response_chars": len(content)}); merr == nil {
			record.Usage = datatypes.JSON(usage)
		}
		if _, lerr := s.callLogs.Create(ctx, nil, record); lerr != nil {
			s.log.Warn("ai call log insert failed", "error", lerr)
		}

		event := realtime.SSEEventGenerationAttempt
		if err != nil {
			event = realtime.SSEEventGenerationRetrying
		}
		s.publish(ctx, channel, event, map[string]any{
			"proposal_id":  proposal.ID,
			"section_type": req.SectionType,
			"attempt":      attempt,
			"success":      err == nil,
		})
	}
}

func (s *writerService) publish(ctx context.Context, channel string, event realtime.SSEEvent, data any) {
	if s.events == nil {
		return
	}
	msg := realtime.SSEMessage{Channel: channel, Event: event, Data: data}
	if err := s.events.Publish(ctx, msg); err != nil {
		s.log.Warn("event publish failed", "event", string(event), "error", err)
	}
}

// markAssetsUsed bumps use counts for library assets that contributed
// to the generated content. Provenance entries look like
// "library:<id>" or "boilerplate:<id>".
func (s *writerService) markAssetsUsed(ctx context.Context, sources []string) {
	var ids []uuid.UUID
	for _, src := range sources {
		var raw string
		switch {
		case strings.HasPrefix(src, "library:"):
			raw = strings.TrimPrefix(src, "library:")
		case strings.HasPrefix(src, "boilerplate:"):
			raw = strings.TrimPrefix(src, "boilerplate:")
		default:
			continue
		}
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}
	if err := s.library.MarkUsed(ctx, ids); err != nil {
		s.log.Warn("asset use count update failed", "error", err)
	}
}
