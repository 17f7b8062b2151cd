package bus

import (
	"context"
	"sync"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/realtime"
)

// memoryBus is the single-process bus: publishes go straight to the
// registered forwarders.
type memoryBus struct {
	mu         sync.RWMutex
	forwarders []func(m realtime.SSEMessage)
	closed     bool
}

func NewMemoryBus() Bus {
	return &memoryBus{}
}

func (b *memoryBus) Publish(_ context.Context, msg realtime.SSEMessage) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, fwd := range b.forwarders {
		fwd(msg)
	}
	return nil
}

func (b *memoryBus) StartForwarder(_ context.Context, onMsg func(m realtime.SSEMessage)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forwarders = append(b.forwarders, onMsg)
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.forwarders = nil
	return nil
}
