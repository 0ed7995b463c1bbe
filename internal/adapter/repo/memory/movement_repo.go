package memory

import (
	"context"
	"sort"

	"villagetick/internal/app/ports"
	"villagetick/internal/domain/travel"
)

type MovementRepo struct {
	store *Store
}

func NewMovementRepo(store *Store) MovementRepo {
	return MovementRepo{store: store}
}

func (r MovementRepo) GetByID(_ context.Context, movementID string) (travel.Movement, error) {
	m, ok := r.store.movements[movementID]
	if !ok {
		return travel.Movement{}, ports.ErrMovementNotFound
	}
	return cloneMovement(m), nil
}

func (r MovementRepo) ListTravelling(_ context.Context, villageID string) ([]travel.Movement, error) {
	out := []travel.Movement{}
	for _, m := range r.store.movements {
		if m.Status != travel.StatusTravelling {
			continue
		}
		if m.From.VillageID != villageID && m.To.VillageID != villageID {
			continue
		}
		out = append(out, cloneMovement(m))
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].ArrivesAt.Equal(out[k].ArrivesAt) {
			return out[i].ID < out[k].ID
		}
		return out[i].ArrivesAt.Before(out[k].ArrivesAt)
	})
	return out, nil
}

func (r MovementRepo) Save(_ context.Context, movement travel.Movement) error {
	r.store.movements[movement.ID] = cloneMovement(movement)
	return nil
}

func cloneMovement(m travel.Movement) travel.Movement {
	units := make(map[string]int, len(m.Units))
	for k, n := range m.Units {
		units[k] = n
	}
	m.Units = units
	return m
}
