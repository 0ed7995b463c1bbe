package memory

import (
	"context"
	"time"
)

type ClockStateRepo struct {
	store *Store
}

func NewClockStateRepo(store *Store) ClockStateRepo {
	return ClockStateRepo{store: store}
}

func (r ClockStateRepo) Get(_ context.Context) (time.Time, time.Duration, bool, error) {
	if r.store.clock == nil {
		return time.Time{}, 0, false, nil
	}
	return r.store.clock.startAt, r.store.clock.tick, true, nil
}

func (r ClockStateRepo) Save(_ context.Context, startAt time.Time, tick time.Duration) error {
	r.store.clock = &clockState{startAt: startAt, tick: tick}
	return nil
}
