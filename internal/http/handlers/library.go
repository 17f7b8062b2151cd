package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/http/response"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/ctxutil"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/services"
)

type LibraryHandler struct {
	libraryService   services.LibraryService
	relevanceService services.RelevanceService
	proposalService  services.ProposalService
}

func NewLibraryHandler(libraryService services.LibraryService, relevanceService services.RelevanceService, proposalService services.ProposalService) *LibraryHandler {
	return &LibraryHandler{
		libraryService:   libraryService,
		relevanceService: relevanceService,
		proposalService:  proposalService,
	}
}

func (lh *LibraryHandler) Create(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	var req services.CreateAssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	asset, err := lh.libraryService.Create(c.Request.Context(), rd.OrganizationID, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

func (lh *LibraryHandler) List(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	assets, err := lh.libraryService.List(c.Request.Context(), rd.OrganizationID, c.Query("kind"), c.Query("section_type"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}

// Relevance previews how library assets rank for a proposal section.
func (lh *LibraryHandler) Relevance(c *gin.Context) {
	var req struct {
		ProposalID  string `json:"proposal_id" binding:"required"`
		SectionType string `json:"section_type" binding:"required"`
		Limit       int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	proposalID, err := uuid.Parse(req.ProposalID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	proposal, err := lh.proposalService.GetByID(c.Request.Context(), proposalID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	ranked, err := lh.relevanceService.Rank(c.Request.Context(), proposal, req.SectionType, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": ranked})
}
