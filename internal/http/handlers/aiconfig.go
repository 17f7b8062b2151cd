package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/http/response"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/ctxutil"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/services"
)

type AiConfigHandler struct {
	configService services.AiConfigService
}

var errNoConfig = errors.New("no ai configuration found")

func NewAiConfigHandler(configService services.AiConfigService) *AiConfigHandler {
	return &AiConfigHandler{configService: configService}
}

func (ch *AiConfigHandler) Get(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	cfg, err := ch.configService.Resolve(c.Request.Context(), rd.OrganizationID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if cfg == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errNoConfig)
		return
	}
	response.RespondOK(c, gin.H{"config": cfg})
}

func (ch *AiConfigHandler) Put(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	var req services.AiConfigInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	cfg, err := ch.configService.Upsert(c.Request.Context(), rd.OrganizationID, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"config": cfg})
}
