package tick

import (
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/world"
)

type Request struct {
	VillageID string
}

type Response struct {
	VillageID        string              `json:"village_id"`
	Tick             int64               `json:"tick"`
	Resources        []view.Resource     `json:"resources"`
	CompletedJobs    []view.Job          `json:"completed_jobs"`
	ArrivedMovements []view.Movement     `json:"arrived_movements"`
	Events           []world.DomainEvent `json:"events"`
	Version          int64               `json:"version"`
}
