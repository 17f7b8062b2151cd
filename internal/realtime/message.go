package realtime

type SSEEvent string

const (
	SSEEventGenerationStarted   SSEEvent = "GenerationStarted"
	SSEEventGenerationAttempt   SSEEvent = "GenerationAttempt"
	SSEEventGenerationRetrying  SSEEvent = "GenerationRetrying"
	SSEEventGenerationSucceeded SSEEvent = "GenerationSucceeded"
	SSEEventGenerationFailed    SSEEvent = "GenerationFailed"
	SSEEventSectionUpdated      SSEEvent = "SectionUpdated"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// ProposalChannel is the event channel for one proposal's lifecycle.
func ProposalChannel(proposalID string) string {
	return "proposal:" + proposalID
}

// UserChannel is the event channel for one user's notifications.
func UserChannel(userID string) string {
	return "user:" + userID
}
