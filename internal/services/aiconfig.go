package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/apierr"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type AiConfigInput struct {
	LLMProvider             string   `json:"llm_provider"`
	Model                   string   `json:"model"`
	DefaultTone             string   `json:"default_tone"`
	DefaultWordCountMin     int      `json:"default_word_count_min"`
	DefaultWordCountMax     int      `json:"default_word_count_max"`
	ReadingLevel            string   `json:"reading_level"`
	Temperature             *float64 `json:"temperature"`
	EnableConfidenceScoring *bool    `json:"enable_confidence_scoring"`
	EnableComplianceCheck   *bool    `json:"enable_compliance_check"`
}

type AiConfigService interface {
	// Resolve returns the active configuration for the organization, falling
	// back to the global configuration. A nil result means nothing is set up.
	Resolve(ctx context.Context, organizationID *uuid.UUID) (*domain.AiConfiguration, error)
	Upsert(ctx context.Context, organizationID *uuid.UUID, input AiConfigInput) (*domain.AiConfiguration, error)
}

type aiConfigService struct {
	db      *gorm.DB
	log     *logger.Logger
	configs repos.AiConfigurationRepo
}

func NewAiConfigService(db *gorm.DB, log *logger.Logger, configs repos.AiConfigurationRepo) AiConfigService {
	return &aiConfigService{db: db, log: log.With("service", "AiConfigService"), configs: configs}
}

func (s *aiConfigService) Resolve(ctx context.Context, organizationID *uuid.UUID) (*domain.AiConfiguration, error) {
	if organizationID != nil {
		cfg, err := s.configs.GetActiveByOrganization(ctx, nil, *organizationID)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		if cfg != nil {
			return cfg, nil
		}
	}
	cfg, err := s.configs.GetActiveGlobal(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return cfg, nil
}

func (s *aiConfigService) Upsert(ctx context.Context, organizationID *uuid.UUID, input AiConfigInput) (*domain.AiConfiguration, error) {
	if input.DefaultWordCountMin < 0 || input.DefaultWordCountMax < 0 {
		return nil, apierr.Validation(fmt.Errorf("word counts must be non-negative"))
	}
	if input.DefaultWordCountMax > 0 && input.DefaultWordCountMin > input.DefaultWordCountMax {
		return nil, apierr.Validation(fmt.Errorf("default_word_count_min exceeds default_word_count_max"))
	}

	cfg := &domain.AiConfiguration{
		ID:                  uuid.New(),
		OrganizationID:      organizationID,
		LLMProvider:         input.LLMProvider,
		Model:               input.Model,
		DefaultTone:         input.DefaultTone,
		DefaultWordCountMin: input.DefaultWordCountMin,
		DefaultWordCountMax: input.DefaultWordCountMax,
		ReadingLevel:        input.ReadingLevel,
		Active:              true,
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "openai"
	}
	if input.Temperature != nil {
		cfg.Temperature = *input.Temperature
	} else {
		cfg.Temperature = 0.7
	}
	if input.EnableConfidenceScoring != nil {
		cfg.EnableConfidenceScoring = *input.EnableConfidenceScoring
	} else {
		cfg.EnableConfidenceScoring = true
	}
	if input.EnableComplianceCheck != nil {
		cfg.EnableComplianceCheck = *input.EnableComplianceCheck
	} else {
		cfg.EnableComplianceCheck = true
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing *domain.AiConfiguration
		var err error
		if organizationID != nil {
			existing, err = s.configs.GetActiveByOrganization(ctx, tx, *organizationID)
		} else {
			existing, err = s.configs.GetActiveGlobal(ctx, tx)
		}
		if err != nil {
			return err
		}
		if existing != nil {
			if err := s.configs.Update(ctx, tx, existing.ID, map[string]interface{}{"active": false}); err != nil {
				return err
			}
		}
		_, err = s.configs.Create(ctx, tx, cfg)
		return err
	})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("ai configuration saved", "config_id", cfg.ID.String())
	return cfg, nil
}
