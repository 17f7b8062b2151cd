package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type stubConfigRepo struct {
	byOrg  map[uuid.UUID]*domain.AiConfiguration
	global *domain.AiConfiguration
}

func (s *stubConfigRepo) Create(_ context.Context, _ *gorm.DB, cfg *domain.AiConfiguration) (*domain.AiConfiguration, error) {
	return cfg, nil
}

func (s *stubConfigRepo) Update(context.Context, *gorm.DB, uuid.UUID, map[string]interface{}) error {
	return nil
}

func (s *stubConfigRepo) GetByID(context.Context, *gorm.DB, uuid.UUID) (*domain.AiConfiguration, error) {
	return nil, nil
}

func (s *stubConfigRepo) GetActiveByOrganization(_ context.Context, _ *gorm.DB, orgID uuid.UUID) (*domain.AiConfiguration, error) {
	return s.byOrg[orgID], nil
}

func (s *stubConfigRepo) GetActiveGlobal(context.Context, *gorm.DB) (*domain.AiConfiguration, error) {
	return s.global, nil
}

func configLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestAiConfigResolveFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	otherOrg := uuid.New()
	orgCfg := &domain.AiConfiguration{ID: uuid.New(), OrganizationID: &orgID, Model: "gpt-4o-mini"}
	globalCfg := &domain.AiConfiguration{ID: uuid.New(), Model: "gpt-4o"}
	svc := NewAiConfigService(nil, configLogger(t), &stubConfigRepo{
		byOrg:  map[uuid.UUID]*domain.AiConfiguration{orgID: orgCfg},
		global: globalCfg,
	})
	ctx := context.Background()

	got, err := svc.Resolve(ctx, &orgID)
	if err != nil {
		t.Fatalf("resolve org: %v", err)
	}
	if got == nil || got.ID != orgCfg.ID {
		t.Fatalf("expected org config, got %+v", got)
	}

	got, err = svc.Resolve(ctx, &otherOrg)
	if err != nil {
		t.Fatalf("resolve fallback: %v", err)
	}
	if got == nil || got.ID != globalCfg.ID {
		t.Fatalf("expected global fallback, got %+v", got)
	}

	got, err = svc.Resolve(ctx, nil)
	if err != nil {
		t.Fatalf("resolve global: %v", err)
	}
	if got == nil || got.ID != globalCfg.ID {
		t.Fatalf("expected global config, got %+v", got)
	}
}

func TestAiConfigResolveNothingConfigured(t *testing.T) {
	t.Parallel()

	svc := NewAiConfigService(nil, configLogger(t), &stubConfigRepo{})
	got, err := svc.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil configuration, got %+v", got)
	}
}

func TestAiConfigUpsertValidation(t *testing.T) {
	t.Parallel()

	svc := NewAiConfigService(nil, configLogger(t), &stubConfigRepo{})
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, nil, AiConfigInput{DefaultWordCountMin: -1}); err == nil {
		t.Fatal("negative min must be rejected")
	}
	if _, err := svc.Upsert(ctx, nil, AiConfigInput{DefaultWordCountMin: 500, DefaultWordCountMax: 200}); err == nil {
		t.Fatal("min above max must be rejected")
	}
}
