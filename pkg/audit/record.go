package audit

import "time"

// Result reports the outcome the audited event describes.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Record is one audit entry derived from a published event. It carries
// everything postmortem analysis needs: who acted, what they did, on which
// entity, when, and the correlation id linking the entry to the rest of the
// causal chain in the logs.
type Record struct {
	ID            string         `json:"id"`
	Event         string         `json:"event"`
	Actor         string         `json:"actor"`
	Action        string         `json:"action"`
	EntityType    string         `json:"entity_type"`
	EntityID      string         `json:"entity_id"`
	Result        Result         `json:"result"`
	Error         string         `json:"error,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
	RecordedAt    time.Time      `json:"recorded_at"`
}
