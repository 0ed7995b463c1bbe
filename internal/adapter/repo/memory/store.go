package memory

import (
	"sync"
	"time"

	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

// Store holds every aggregate in process memory. Repositories do not lock on
// their own; callers go through TxManager, which serialises access.
type Store struct {
	mu        sync.Mutex
	villages  map[string]world.Village
	jobs      map[string]timed.Job
	movements map[string]travel.Movement
	events    map[string][]world.DomainEvent
	clock     *clockState
}

type clockState struct {
	startAt time.Time
	tick    time.Duration
}

func NewStore() *Store {
	return &Store{
		villages:  make(map[string]world.Village),
		jobs:      make(map[string]timed.Job),
		movements: make(map[string]travel.Movement),
		events:    make(map[string][]world.DomainEvent),
	}
}

func (s *Store) SeedVillage(v world.Village) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.villages[v.ID] = v.Clone()
}
