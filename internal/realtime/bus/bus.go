package bus

import (
	"context"
	"fmt"
	"strings"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/realtime"
)

// Bus fans generation events out to SSE hubs, possibly across processes.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}

// New picks the bus implementation once at startup; there is no runtime
// fallback between backends.
func New(log *logger.Logger, backend string) (Bus, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "memory":
		return NewMemoryBus(), nil
	case "redis":
		return NewRedisBus(log)
	default:
		return nil, fmt.Errorf("unknown realtime bus backend %q", backend)
	}
}
