package bus

import (
	"context"
	"testing"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/realtime"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestNewSelectsBackend(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{"", "memory", "MEMORY"} {
		b, err := New(testLogger(t), backend)
		if err != nil {
			t.Fatalf("New(%q): %v", backend, err)
		}
		if b == nil {
			t.Fatalf("New(%q): nil bus", backend)
		}
	}

	if _, err := New(testLogger(t), "nats"); err == nil {
		t.Fatal("unknown backend must error")
	}
}

func TestMemoryBusDeliversToForwarders(t *testing.T) {
	t.Parallel()

	b := NewMemoryBus()
	ctx := context.Background()

	var got []realtime.SSEMessage
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) {
		got = append(got, m)
	}); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}

	msg := realtime.SSEMessage{Channel: "proposal:x", Event: realtime.SSEEventGenerationStarted}
	if err := b.Publish(ctx, msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 1 || got[0].Channel != "proposal:x" {
		t.Fatalf("forwarded: %+v", got)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Publish(ctx, msg); err != nil {
		t.Fatalf("Publish after close: %v", err)
	}
	if len(got) != 1 {
		t.Fatal("message delivered after close")
	}
}
