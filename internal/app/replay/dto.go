package replay

import "villagetick/internal/domain/world"

type Request struct {
	VillageID    string
	Limit        int
	Types        []string
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	VillageID string              `json:"village_id"`
	Events    []world.DomainEvent `json:"events"`
}
