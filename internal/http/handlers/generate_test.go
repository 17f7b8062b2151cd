package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpMW "github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/http/middleware"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/apierr"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/ctxutil"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/services"
)

type stubWriter struct {
	calls  int
	result *services.GenerateResult
	err    error
}

func (s *stubWriter) GenerateSection(_ context.Context, _ services.GenerateRequest) (*services.GenerateResult, error) {
	s.calls++
	return s.result, s.err
}

type stubAuth struct {
	userID uuid.UUID
}

func (s *stubAuth) Register(context.Context, services.RegisterInput) (*services.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) Login(context.Context, string, string) (*services.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	if token != "valid-token" {
		return ctx, apierr.Unauthorized(errors.New("invalid token"))
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID: s.userID,
		Email:  "writer@example.com",
		Name:   "Pat Writer",
	}), nil
}

func handlerLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func generateRouter(t *testing.T, writer *stubWriter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	mw := httpMW.NewAuthMiddleware(handlerLogger(t), &stubAuth{userID: uuid.New()})
	api := r.Group("/api")
	api.Use(mw.RequireAuth())
	api.POST("/sections/generate", NewGenerateHandler(writer).Generate)
	return r
}

func postGenerate(t *testing.T, r *gin.Engine, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/sections/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGenerateRejectsUnauthenticated(t *testing.T) {
	t.Parallel()

	writer := &stubWriter{}
	r := generateRouter(t, writer)

	for name, token := range map[string]string{"missing": "", "invalid": "bad-token"} {
		rec := postGenerate(t, r, token, gin.H{"proposalId": uuid.New().String(), "sectionType": "executive_summary"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s token: status got=%d want=401", name, rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s token: body: %v", name, err)
		}
		if body["error"] != "Unauthorized" {
			t.Fatalf("%s token: error body: %v", name, body)
		}
	}
	if writer.calls != 0 {
		t.Fatalf("writer invoked %d times for unauthenticated requests", writer.calls)
	}
}

func TestGenerateValidatesRequiredParameters(t *testing.T) {
	t.Parallel()

	writer := &stubWriter{}
	r := generateRouter(t, writer)

	for name, body := range map[string]gin.H{
		"no proposal": {"sectionType": "executive_summary"},
		"no section":  {"proposalId": uuid.New().String()},
		"blank":       {"proposalId": "  ", "sectionType": ""},
	} {
		rec := postGenerate(t, r, "valid-token", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status got=%d want=400", name, rec.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: body: %v", name, err)
		}
		if resp["error"] != "Missing required parameters: proposalId and sectionType are required" {
			t.Fatalf("%s: error message: %v", name, resp["error"])
		}
	}
	if writer.calls != 0 {
		t.Fatalf("writer invoked %d times for invalid requests", writer.calls)
	}
}

func TestGenerateSuccessShape(t *testing.T) {
	t.Parallel()

	score := 0.85
	writer := &stubWriter{result: &services.GenerateResult{
		SectionID:        uuid.New(),
		Content:          "Generated section prose.",
		WordCount:        3,
		ConfidenceScore:  &score,
		ComplianceIssues: []string{},
		SourcesUsed:      []string{"section:technical_approach", "library:abc"},
		ContextSummary:   "Context built from 1 existing proposal section(s)",
		ConfigUsed:       "gpt-4o",
	}}
	r := generateRouter(t, writer)

	rec := postGenerate(t, r, "valid-token", gin.H{
		"proposalId":  uuid.New().String(),
		"sectionType": "executive_summary",
		"generationParams": gin.H{
			"tone":           "formal",
			"word_count_min": 200,
			"word_count_max": 400,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success          bool     `json:"success"`
		SectionID        string   `json:"section_id"`
		Content          string   `json:"content"`
		WordCount        int      `json:"word_count"`
		ConfidenceScore  *float64 `json:"confidence_score"`
		ComplianceIssues []string `json:"compliance_issues"`
		Metadata         struct {
			SourcesUsed    []string `json:"sources_used"`
			ContextSummary string   `json:"context_summary"`
			AiConfigUsed   string   `json:"ai_config_used"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.SectionID == "" || resp.Content == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ConfidenceScore == nil || *resp.ConfidenceScore != score {
		t.Fatalf("confidence score: %v", resp.ConfidenceScore)
	}
	if resp.ComplianceIssues == nil {
		t.Fatal("compliance_issues must be present, even when empty")
	}
	if len(resp.Metadata.SourcesUsed) != 2 || resp.Metadata.AiConfigUsed != "gpt-4o" {
		t.Fatalf("metadata: %+v", resp.Metadata)
	}
	if writer.calls != 1 {
		t.Fatalf("writer calls: got=%d want=1", writer.calls)
	}
}

func TestGenerateNullConfidenceWhenScoringDisabled(t *testing.T) {
	t.Parallel()

	writer := &stubWriter{result: &services.GenerateResult{
		SectionID:        uuid.New(),
		Content:          "Prose.",
		WordCount:        1,
		ConfidenceScore:  nil,
		ComplianceIssues: []string{},
		SourcesUsed:      []string{},
		ContextSummary:   "no reference material available",
		ConfigUsed:       "gpt-4o",
	}}
	r := generateRouter(t, writer)

	rec := postGenerate(t, r, "valid-token", gin.H{
		"proposalId":  uuid.New().String(),
		"sectionType": "executive_summary",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	score, present := resp["confidence_score"]
	if !present {
		t.Fatal("confidence_score key must be present when scoring is disabled")
	}
	if score != nil {
		t.Fatalf("confidence_score: got=%v want=null", score)
	}
}

func TestGenerateMapsFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "proposal missing",
			err:        apierr.NotFound(errors.New("proposal not found")),
			wantStatus: http.StatusNotFound,
			wantError:  "Proposal not found",
		},
		{
			name:       "config missing",
			err:        apierr.New(http.StatusInternalServerError, apierr.CodeGenerationFailed, services.ErrAiConfigMissing),
			wantStatus: http.StatusInternalServerError,
			wantError:  "No AI configuration found. Please set up AI settings first.",
		},
		{
			name:       "generation exhausted",
			err:        apierr.New(http.StatusInternalServerError, apierr.CodeGenerationFailed, fmt.Errorf("generation failed after 3 attempts: rate limited")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate content",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			writer := &stubWriter{err: tc.err}
			r := generateRouter(t, writer)
			rec := postGenerate(t, r, "valid-token", gin.H{
				"proposalId":  uuid.New().String(),
				"sectionType": "executive_summary",
			})
			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.wantStatus, rec.Body.String())
			}
			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp["error"] != tc.wantError {
				t.Fatalf("error: got=%v want=%q", resp["error"], tc.wantError)
			}
			if tc.name == "generation exhausted" {
				if resp["details"] != "generation failed after 3 attempts: rate limited" {
					t.Fatalf("details: %v", resp["details"])
				}
			}
		})
	}
}

func TestGenerateRejectsMalformedProposalID(t *testing.T) {
	t.Parallel()

	writer := &stubWriter{}
	r := generateRouter(t, writer)

	rec := postGenerate(t, r, "valid-token", gin.H{
		"proposalId":  "not-a-uuid",
		"sectionType": "executive_summary",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got=%d want=404", rec.Code)
	}
	if writer.calls != 0 {
		t.Fatal("writer must not be invoked for malformed ids")
	}
}
