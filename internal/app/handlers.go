package app

import (
	httpH "github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/http/handlers"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/realtime"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Proposal *httpH.ProposalHandler
	Section  *httpH.SectionHandler
	Generate *httpH.GenerateHandler
	AiConfig *httpH.AiConfigHandler
	Library  *httpH.LibraryHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, s Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(s.Auth),
		User:     httpH.NewUserHandler(s.User),
		Proposal: httpH.NewProposalHandler(s.Proposal),
		Section:  httpH.NewSectionHandler(s.Section),
		Generate: httpH.NewGenerateHandler(s.Writer),
		AiConfig: httpH.NewAiConfigHandler(s.AiConfig),
		Library:  httpH.NewLibraryHandler(s.Library, s.Relevance, s.Proposal),
		Realtime: httpH.NewRealtimeHandler(log, hub),
	}
}
