package status

import (
	"time"

	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/travel"
)

type Request struct {
	VillageID string
}

type Response struct {
	VillageID         string                       `json:"village_id"`
	Name              string                       `json:"name"`
	OwnerID           string                       `json:"owner_id"`
	Coordinate        travel.Coordinate            `json:"coordinate"`
	Resources         []view.Resource              `json:"resources"`
	Buildings         map[catalog.BuildingType]int `json:"buildings"`
	Troops            map[string]int               `json:"troops"`
	Research          []string                     `json:"research"`
	Jobs              []view.Job                   `json:"jobs"`
	Movements         []view.Movement              `json:"movements"`
	Tick              int64                        `json:"tick"`
	NextTickInSeconds float64                      `json:"next_tick_in_seconds"`
	EvaluatedAt       time.Time                    `json:"evaluated_at"`
	Version           int64                        `json:"version"`
}
