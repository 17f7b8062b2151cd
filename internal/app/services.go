package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/generation"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/openai"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/realtime/bus"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Proposal  services.ProposalService
	AiConfig  services.AiConfigService
	Relevance services.RelevanceService
	Library   services.LibraryService
	Section   services.SectionService
	Writer    services.WriterService

	VersionStore *services.VersionStore
	EventBus     bus.Bus
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	eventBus, err := bus.New(log, cfg.RealtimeBus)
	if err != nil {
		return Services{}, fmt.Errorf("init realtime bus: %w", err)
	}

	llm, err := openai.NewClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init openai client: %w", err)
	}

	prompts, err := generation.NewPromptBuilder()
	if err != nil {
		return Services{}, fmt.Errorf("init prompt builder: %w", err)
	}

	auth := services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	user := services.NewUserService(db, log, r.User)
	proposal := services.NewProposalService(db, log, r.Proposal)
	aiConfig := services.NewAiConfigService(db, log, r.AiConfiguration)
	relevance := services.NewRelevanceService(db, log, r.LibraryAsset)
	library := services.NewLibraryService(db, log, r.LibraryAsset, relevance)

	store := services.NewVersionStore(db, log, r.GeneratedSection, r.SectionHistory)
	section := services.NewSectionService(db, log, r.GeneratedSection, r.SectionHistory, store)

	aggregator := generation.NewAggregator(log, section, library)
	post := generation.NewPostProcessor(log, generation.NewHeuristicScorer(), generation.NewKeywordComplianceChecker())

	writer := services.NewWriterService(
		db, log,
		r.Proposal, r.AICallLog,
		aiConfig, library,
		aggregator, prompts, post,
		llm, store, eventBus,
	)

	return Services{
		Auth:         auth,
		User:         user,
		Proposal:     proposal,
		AiConfig:     aiConfig,
		Relevance:    relevance,
		Library:      library,
		Section:      section,
		Writer:       writer,
		VersionStore: store,
		EventBus:     eventBus,
	}, nil
}
