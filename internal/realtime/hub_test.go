package realtime

import (
	"testing"

	"github.com/google/uuid"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestBroadcastReachesSubscribersOnly(t *testing.T) {
	t.Parallel()

	hub := NewSSEHub(testLogger(t))
	proposalID := uuid.New().String()

	sub := hub.NewSSEClient(uuid.New())
	other := hub.NewSSEClient(uuid.New())
	hub.AddChannel(sub, ProposalChannel(proposalID))
	hub.AddChannel(other, ProposalChannel(uuid.New().String()))

	hub.Broadcast(SSEMessage{
		Channel: ProposalChannel(proposalID),
		Event:   SSEEventGenerationStarted,
	})

	select {
	case msg := <-sub.Outbound:
		if msg.Event != SSEEventGenerationStarted {
			t.Fatalf("event: got=%q", msg.Event)
		}
	default:
		t.Fatal("subscriber received nothing")
	}
	select {
	case msg := <-other.Outbound:
		t.Fatalf("non-subscriber received %+v", msg)
	default:
	}
}

func TestBroadcastDropsForSlowClient(t *testing.T) {
	t.Parallel()

	hub := NewSSEHub(testLogger(t))
	client := hub.NewSSEClient(uuid.New())
	channel := ProposalChannel(uuid.New().String())
	hub.AddChannel(client, channel)

	// Fill the buffer, then one more; the overflow must not block.
	for i := 0; i < cap(client.Outbound)+1; i++ {
		hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventGenerationAttempt})
	}
	if got := len(client.Outbound); got != cap(client.Outbound) {
		t.Fatalf("buffered: got=%d want=%d", got, cap(client.Outbound))
	}
}

func TestCloseClientRemovesSubscriptions(t *testing.T) {
	t.Parallel()

	hub := NewSSEHub(testLogger(t))
	client := hub.NewSSEClient(uuid.New())
	channel := ProposalChannel(uuid.New().String())
	hub.AddChannel(client, channel)
	hub.CloseClient(client)

	if _, open := <-client.Outbound; open {
		t.Fatal("outbound channel still open after close")
	}
	// Broadcasting after close must not panic or deliver.
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventGenerationFailed})
}

func TestSubscribeUserJoinsAllClients(t *testing.T) {
	t.Parallel()

	hub := NewSSEHub(testLogger(t))
	userID := uuid.New()

	a := hub.NewSSEClient(userID)
	b := hub.NewSSEClient(userID)
	hub.AddChannel(a, UserChannel(userID.String()))
	hub.AddChannel(b, UserChannel(userID.String()))

	proposalChannel := ProposalChannel(uuid.New().String())
	hub.SubscribeUser(userID, proposalChannel)

	hub.Broadcast(SSEMessage{Channel: proposalChannel, Event: SSEEventSectionUpdated})
	for name, c := range map[string]*SSEClient{"a": a, "b": b} {
		select {
		case <-c.Outbound:
		default:
			t.Fatalf("client %s did not receive proposal event", name)
		}
	}
}
