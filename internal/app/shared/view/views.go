package view

import (
	"math"
	"time"

	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

type Resource struct {
	Type              economy.ResourceType `json:"type"`
	Amount            int                  `json:"amount"`
	Capacity          int                  `json:"capacity"`
	RatePerHour       float64              `json:"rate_per_hour"`
	Percentage        float64              `json:"percentage"`
	TimeToFullSeconds *int64               `json:"time_to_full_seconds"`
	TimeToFull        string               `json:"time_to_full"`
}

// Resources expects a village already settled to the time being shown.
func Resources(v world.Village) []Resource {
	out := make([]Resource, 0, len(v.Stocks))
	for _, rt := range economy.AllResourceTypes() {
		st, ok := v.Stocks[rt]
		if !ok {
			continue
		}
		r := Resource{
			Type:        rt,
			Amount:      int(math.Floor(st.Amount)),
			Capacity:    int(st.Capacity),
			RatePerHour: st.RatePerHour,
			Percentage:  math.Round(st.Percentage()*100) / 100,
			TimeToFull:  economy.FormatTimeToFull(st.Amount, st.Capacity, st.RatePerSecond()),
		}
		if seconds, ok := st.TimeToFull(); ok {
			s := int64(math.Ceil(seconds))
			r.TimeToFullSeconds = &s
		}
		out = append(out, r)
	}
	return out
}

type Job struct {
	ID               string       `json:"id"`
	VillageID        string       `json:"village_id"`
	Kind             timed.Kind   `json:"kind"`
	Subject          string       `json:"subject"`
	Level            int          `json:"level,omitempty"`
	Quantity         int          `json:"quantity"`
	UnitsFinished    int          `json:"units_finished"`
	State            timed.State  `json:"state"`
	Cost             economy.Cost `json:"cost"`
	StartedAt        *time.Time   `json:"started_at,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	Progress         float64      `json:"progress"`
	RemainingSeconds int64        `json:"remaining_seconds"`
	Remaining        string       `json:"remaining"`
}

func FromJob(j timed.Job, now time.Time) Job {
	remaining := ceilSeconds(j.Remaining(now))
	out := Job{
		ID:               j.ID,
		VillageID:        j.VillageID,
		Kind:             j.Kind,
		Subject:          j.Subject,
		Level:            j.Level,
		Quantity:         j.Quantity,
		UnitsFinished:    j.UnitsFinished(now),
		State:            j.State,
		Cost:             j.Cost,
		Progress:         math.Round(j.Progress(now)*100) / 100,
		RemainingSeconds: remaining,
		Remaining:        economy.FormatDuration(time.Duration(remaining) * time.Second),
	}
	if !j.StartedAt.IsZero() {
		started := j.StartedAt
		out.StartedAt = &started
	}
	if !j.CompletedAt.IsZero() {
		completed := j.CompletedAt
		out.CompletedAt = &completed
	}
	return out
}

type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

type Movement struct {
	ID               string              `json:"id"`
	Kind             travel.MovementKind `json:"kind"`
	Direction        Direction           `json:"direction,omitempty"`
	FromVillageID    string              `json:"from_village_id"`
	ToVillageID      string              `json:"to_village_id"`
	Units            map[string]int      `json:"units"`
	Distance         float64             `json:"distance"`
	RealDistanceKm   float64             `json:"real_distance_km,omitempty"`
	TravelTicks      int64               `json:"travel_ticks"`
	Status           travel.Status       `json:"status"`
	DepartedAt       time.Time           `json:"departed_at"`
	ArrivesAt        time.Time           `json:"arrives_at"`
	Progress         float64             `json:"progress"`
	RemainingSeconds int64               `json:"remaining_seconds"`
	Remaining        string              `json:"remaining"`
}

// FromMovement renders a movement; viewer is the village looking at it and
// only decides Direction.
func FromMovement(m travel.Movement, viewer string, now time.Time) Movement {
	remaining := ceilSeconds(m.Remaining(now))
	out := Movement{
		ID:               m.ID,
		Kind:             m.Kind,
		FromVillageID:    m.From.VillageID,
		ToVillageID:      m.To.VillageID,
		Units:            m.Units,
		Distance:         math.Round(m.Distance*100) / 100,
		RealDistanceKm:   math.Round(m.RealDistanceKm*10) / 10,
		TravelTicks:      m.TravelTicks,
		Status:           m.Status,
		DepartedAt:       m.DepartedAt,
		ArrivesAt:        m.ArrivesAt,
		Progress:         math.Round(m.Progress(now)*100) / 100,
		RemainingSeconds: remaining,
		Remaining:        economy.FormatDuration(time.Duration(remaining) * time.Second),
	}
	switch viewer {
	case m.From.VillageID:
		out.Direction = DirectionOutgoing
	case m.To.VillageID:
		out.Direction = DirectionIncoming
	}
	return out
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}
