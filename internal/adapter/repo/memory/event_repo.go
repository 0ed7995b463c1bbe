package memory

import (
	"context"

	"villagetick/internal/domain/world"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, villageID string, events []world.DomainEvent) error {
	r.store.events[villageID] = append(r.store.events[villageID], events...)
	return nil
}

// ListByVillageID returns the newest events first.
func (r EventRepo) ListByVillageID(_ context.Context, villageID string, limit int) ([]world.DomainEvent, error) {
	all := r.store.events[villageID]
	out := make([]world.DomainEvent, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out, nil
}
