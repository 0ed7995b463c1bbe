package movement

import (
	"context"
	"errors"
	"time"

	"villagetick/internal/app/ports"
	"villagetick/internal/app/tick"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid movement request")

type Deps struct {
	TxManager ports.TxManager
	Villages  ports.VillageRepository
	Jobs      ports.JobRepository
	Movements ports.MovementRepository
	Events    ports.EventRepository
	Clock     world.Clock
	Now       func() time.Time
	NewID     func() string
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) newID() string {
	if d.NewID == nil {
		return uuid.NewString()
	}
	return d.NewID()
}

func (d Deps) settle(ctx context.Context, villageID string, now time.Time) (world.Village, error) {
	out, err := tick.Settler{
		Villages:  d.Villages,
		Jobs:      d.Jobs,
		Movements: d.Movements,
		Events:    d.Events,
		Clock:     d.Clock,
		NewID:     d.NewID,
	}.Settle(ctx, villageID, now)
	return out.Village, err
}

func movementEvent(eventType string, m travel.Movement, at time.Time) world.DomainEvent {
	return world.DomainEvent{
		Type:       eventType,
		OccurredAt: at,
		Payload: map[string]any{
			"movement_id":     m.ID,
			"kind":            string(m.Kind),
			"from_village_id": m.From.VillageID,
			"to_village_id":   m.To.VillageID,
			"units":           m.Units,
			"arrives_at":      m.ArrivesAt,
			"travel_ticks":    m.TravelTicks,
		},
	}
}
