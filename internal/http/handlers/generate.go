package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/generation"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/apierr"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/ctxutil"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/services"
)

type generateRequest struct {
	ProposalID       string            `json:"proposalId"`
	SectionType      string            `json:"sectionType"`
	GenerationParams generation.Params `json:"generationParams"`
	UserEmail        string            `json:"userEmail"`
	AgentTriggered   bool              `json:"agentTriggered"`
}

type generateMetadata struct {
	SourcesUsed    []string `json:"sources_used"`
	ContextSummary string   `json:"context_summary"`
	AiConfigUsed   string   `json:"ai_config_used"`
}

type generateResponse struct {
	Success          bool             `json:"success"`
	SectionID        string           `json:"section_id"`
	Content          string           `json:"content"`
	WordCount        int              `json:"word_count"`
	ConfidenceScore  *float64         `json:"confidence_score"`
	ComplianceIssues []string         `json:"compliance_issues"`
	Metadata         generateMetadata `json:"metadata"`
}

type GenerateHandler struct {
	writerService services.WriterService
}

func NewGenerateHandler(writerService services.WriterService) *GenerateHandler {
	return &GenerateHandler{writerService: writerService}
}

func (gh *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters: proposalId and sectionType are required"})
		return
	}
	if strings.TrimSpace(req.ProposalID) == "" || strings.TrimSpace(req.SectionType) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters: proposalId and sectionType are required"})
		return
	}
	proposalID, err := uuid.Parse(req.ProposalID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return
	}

	rd := ctxutil.GetRequestData(c.Request.Context())
	email := rd.Email
	if req.UserEmail != "" {
		email = req.UserEmail
	}

	result, err := gh.writerService.GenerateSection(c.Request.Context(), services.GenerateRequest{
		ProposalID:     proposalID,
		SectionType:    req.SectionType,
		Params:         req.GenerationParams,
		UserID:         &rd.UserID,
		UserEmail:      email,
		UserName:       rd.Name,
		AgentTriggered: req.AgentTriggered,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAiConfigMissing):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No AI configuration found. Please set up AI settings first."})
		case apierr.StatusOf(err) == http.StatusNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to generate content",
				"details": rootMessage(err),
			})
		}
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		Success:          true,
		SectionID:        result.SectionID.String(),
		Content:          result.Content,
		WordCount:        result.WordCount,
		ConfidenceScore:  result.ConfidenceScore,
		ComplianceIssues: result.ComplianceIssues,
		Metadata: generateMetadata{
			SourcesUsed:    result.SourcesUsed,
			ContextSummary: result.ContextSummary,
			AiConfigUsed:   result.ConfigUsed,
		},
	})
}

// rootMessage strips the API error envelope so clients see the
// underlying generation failure.
func rootMessage(err error) string {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Err != nil {
		return ae.Err.Error()
	}
	return err.Error()
}
