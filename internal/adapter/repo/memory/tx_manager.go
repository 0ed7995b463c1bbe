package memory

import (
	"context"

	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx serialises fn against the store and restores the previous contents
// when fn fails.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	villages  map[string]world.Village
	jobs      map[string]timed.Job
	movements map[string]travel.Movement
	events    map[string]int
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		villages:  make(map[string]world.Village, len(s.villages)),
		jobs:      make(map[string]timed.Job, len(s.jobs)),
		movements: make(map[string]travel.Movement, len(s.movements)),
		events:    make(map[string]int, len(s.events)),
	}
	for id, v := range s.villages {
		snap.villages[id] = v
	}
	for id, j := range s.jobs {
		snap.jobs[id] = j
	}
	for id, m := range s.movements {
		snap.movements[id] = m
	}
	for id, evts := range s.events {
		snap.events[id] = len(evts)
	}
	return snap
}

// restore relies on repositories storing copies, so the saved values were
// never mutated in place.
func (s *Store) restore(snap snapshot) {
	s.villages = snap.villages
	s.jobs = snap.jobs
	s.movements = snap.movements
	for id, evts := range s.events {
		n, ok := snap.events[id]
		if !ok {
			delete(s.events, id)
			continue
		}
		s.events[id] = evts[:n]
	}
}
