package memory

import (
	"context"

	"villagetick/internal/app/ports"
	"villagetick/internal/domain/world"
)

type VillageRepo struct {
	store *Store
}

func NewVillageRepo(store *Store) VillageRepo {
	return VillageRepo{store: store}
}

func (r VillageRepo) GetByID(_ context.Context, villageID string) (world.Village, error) {
	v, ok := r.store.villages[villageID]
	if !ok {
		return world.Village{}, ports.ErrVillageNotFound
	}
	return v.Clone(), nil
}

func (r VillageRepo) SaveWithVersion(_ context.Context, village world.Village, expectedVersion int64) error {
	current, ok := r.store.villages[village.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.villages[village.ID] = village.Clone()
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.villages[village.ID] = village.Clone()
	return nil
}
