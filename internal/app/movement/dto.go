package movement

import (
	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/travel"
)

type DispatchRequest struct {
	Kind          travel.MovementKind `json:"kind"`
	FromVillageID string              `json:"from_village_id"`
	ToVillageID   string              `json:"to_village_id"`
	Units         map[string]int      `json:"units"`
}

type MovementRequest struct {
	MovementID string
}

type Response struct {
	Notice   notice.Notice  `json:"notice"`
	Movement view.Movement  `json:"movement"`
	Return   *view.Movement `json:"return,omitempty"`
}

type DistanceRequest struct {
	FromVillageID string
	ToVillageID   string
	Units         map[string]int
}

type DistanceResponse struct {
	FromVillageID  string  `json:"from_village_id"`
	ToVillageID    string  `json:"to_village_id"`
	Distance       float64 `json:"distance"`
	RealDistanceKm float64 `json:"real_distance_km,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
	TravelTicks    int64   `json:"travel_ticks"`
	TravelSeconds  int64   `json:"travel_seconds"`
	TravelTime     string  `json:"travel_time"`
}
