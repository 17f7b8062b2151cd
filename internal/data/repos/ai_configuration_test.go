package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos/testutil"
)

func TestAiConfigurationRepoResolution(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewAiConfigurationRepo(db, testutil.Logger(t))

	orgID := uuid.New()

	if cfg, err := repo.GetActiveByOrganization(ctx, tx, orgID); err != nil || cfg != nil {
		t.Fatalf("empty org lookup: err=%v cfg=%+v", err, cfg)
	}

	global := testutil.SeedAiConfiguration(t, ctx, tx, nil)
	if cfg, err := repo.GetActiveGlobal(ctx, tx); err != nil || cfg == nil || cfg.ID != global.ID {
		t.Fatalf("GetActiveGlobal: err=%v cfg=%+v", err, cfg)
	}

	scoped := testutil.SeedAiConfiguration(t, ctx, tx, &orgID)
	if cfg, err := repo.GetActiveByOrganization(ctx, tx, orgID); err != nil || cfg == nil || cfg.ID != scoped.ID {
		t.Fatalf("GetActiveByOrganization: err=%v cfg=%+v", err, cfg)
	}

	// Deactivated configs never resolve.
	if err := repo.Update(ctx, tx, scoped.ID, map[string]interface{}{"active": false}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cfg, err := repo.GetActiveByOrganization(ctx, tx, orgID); err != nil || cfg != nil {
		t.Fatalf("after deactivate: err=%v cfg=%+v", err, cfg)
	}
}
