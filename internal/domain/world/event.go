package world

import "time"

const (
	EventJobStarted         = "job_started"
	EventJobCancelled       = "job_cancelled"
	EventJobAbandoned       = "job_abandoned"
	EventJobCompleted       = "job_completed"
	EventMovementDispatched = "movement_dispatched"
	EventMovementCancelled  = "movement_cancelled"
	EventMovementArrived    = "movement_arrived"
	EventVillageFounded     = "village_founded"
)

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}
