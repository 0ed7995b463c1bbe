package tick

import (
	"context"
	"fmt"
	"time"

	"villagetick/internal/app/ports"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"

	"github.com/google/uuid"
)

// Settler brings a village up to date and persists the result. Callers run it
// inside a transaction.
type Settler struct {
	Villages  ports.VillageRepository
	Jobs      ports.JobRepository
	Movements ports.MovementRepository
	Events    ports.EventRepository
	Clock     world.Clock
	NewID     func() string
}

type Outcome struct {
	Village   world.Village
	Completed []timed.Job
	Arrived   []travel.Movement
	Returns   []travel.Movement
	Events    []world.DomainEvent
}

// Settle also settles the destinations of this village's own troops that
// have arrived elsewhere, so attacks turn around and the way home can land in
// the same pass.
func (s Settler) Settle(ctx context.Context, villageID string, now time.Time) (Outcome, error) {
	return s.settle(ctx, villageID, now, map[string]bool{})
}

func (s Settler) settle(ctx context.Context, villageID string, now time.Time, visiting map[string]bool) (Outcome, error) {
	visiting[villageID] = true
	if err := s.settleDestinations(ctx, villageID, now, visiting); err != nil {
		return Outcome{}, err
	}

	village, err := s.Villages.GetByID(ctx, villageID)
	if err != nil {
		return Outcome{}, err
	}
	jobs, err := s.Jobs.ListByVillage(ctx, villageID, timed.StateActive)
	if err != nil {
		return Outcome{}, err
	}
	movements, err := s.Movements.ListTravelling(ctx, villageID)
	if err != nil {
		return Outcome{}, err
	}

	p := world.Advance(village, jobs, movements, now)
	out := Outcome{
		Village:   p.Village,
		Completed: p.Completed,
		Arrived:   p.Arrived,
		Events:    p.Events,
	}
	for _, job := range p.Completed {
		if err := s.Jobs.Save(ctx, job); err != nil {
			return Outcome{}, err
		}
	}
	for _, m := range p.Arrived {
		if err := s.Movements.Save(ctx, m); err != nil {
			return Outcome{}, err
		}
		if m.Kind != travel.MovementAttack {
			continue
		}
		back := m.ReturnHome(s.newID(), m.ArrivesAt, s.Clock.TickDuration())
		if err := s.Movements.Save(ctx, back); err != nil {
			return Outcome{}, err
		}
		out.Returns = append(out.Returns, back)
		out.Events = append(out.Events, world.DomainEvent{
			Type:       world.EventMovementDispatched,
			OccurredAt: back.DepartedAt,
			Payload: map[string]any{
				"movement_id":   back.ID,
				"kind":          string(back.Kind),
				"to_village_id": back.To.VillageID,
				"units":         back.Units,
				"arrives_at":    back.ArrivesAt,
				"travel_ticks":  back.TravelTicks,
				"caused_by":     m.ID,
			},
		})
	}

	out.Village.Version = village.Version + 1
	if err := s.Villages.SaveWithVersion(ctx, out.Village, village.Version); err != nil {
		return Outcome{}, err
	}
	if err := s.Events.Append(ctx, villageID, out.Events); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// settleDestinations skips villages already being settled further up; their
// incoming movements land when their own Advance runs.
func (s Settler) settleDestinations(ctx context.Context, villageID string, now time.Time, visiting map[string]bool) error {
	movements, err := s.Movements.ListTravelling(ctx, villageID)
	if err != nil {
		return err
	}
	for _, m := range movements {
		target := m.To.VillageID
		if m.From.VillageID != villageID || target == villageID || visiting[target] || !m.Arrived(now) {
			continue
		}
		if _, err := s.settle(ctx, target, now, visiting); err != nil {
			return fmt.Errorf("settle destination %s: %w", target, err)
		}
	}
	return nil
}

func (s Settler) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
