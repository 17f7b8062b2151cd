package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/http/handlers"
	httpMW "github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/http/middleware"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	ProposalHandler *httpH.ProposalHandler
	SectionHandler  *httpH.SectionHandler
	GenerateHandler *httpH.GenerateHandler
	AiConfigHandler *httpH.AiConfigHandler
	LibraryHandler  *httpH.LibraryHandler
	RealtimeHandler *httpH.RealtimeHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		if cfg.ProposalHandler != nil {
			protected.POST("/proposals", cfg.ProposalHandler.Create)
			protected.GET("/proposals", cfg.ProposalHandler.List)
			protected.GET("/proposals/:id", cfg.ProposalHandler.Get)
			protected.PATCH("/proposals/:id/status", cfg.ProposalHandler.UpdateStatus)
		}

		if cfg.SectionHandler != nil {
			protected.GET("/proposals/:id/sections", cfg.SectionHandler.ListByProposal)
			protected.GET("/sections/:id/history", cfg.SectionHandler.History)
			protected.PUT("/sections/:id", cfg.SectionHandler.Edit)
		}

		if cfg.GenerateHandler != nil {
			protected.POST("/sections/generate", cfg.GenerateHandler.Generate)
		}

		if cfg.AiConfigHandler != nil {
			protected.GET("/ai-config", cfg.AiConfigHandler.Get)
			protected.PUT("/ai-config", cfg.AiConfigHandler.Put)
		}

		if cfg.LibraryHandler != nil {
			protected.POST("/library", cfg.LibraryHandler.Create)
			protected.GET("/library", cfg.LibraryHandler.List)
			protected.POST("/library/relevance", cfg.LibraryHandler.Relevance)
		}

		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.Stream)
			protected.POST("/sse/subscribe", cfg.RealtimeHandler.Subscribe)
		}
	}

	return r
}
