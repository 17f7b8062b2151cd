package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/http"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

func wireRouter(log *logger.Logger, h Handlers, mw Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:            log,
		AuthMiddleware: mw.Auth,

		AuthHandler:     h.Auth,
		UserHandler:     h.User,
		ProposalHandler: h.Proposal,
		SectionHandler:  h.Section,
		GenerateHandler: h.Generate,
		AiConfigHandler: h.AiConfig,
		LibraryHandler:  h.Library,
		RealtimeHandler: h.Realtime,
		HealthHandler:   h.Health,
	})
}
