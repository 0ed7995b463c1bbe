package ports

import (
	"context"
	"time"

	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

type VillageRepository interface {
	GetByID(ctx context.Context, villageID string) (world.Village, error)
	SaveWithVersion(ctx context.Context, village world.Village, expectedVersion int64) error
}

type JobRepository interface {
	GetByID(ctx context.Context, jobID string) (timed.Job, error)
	ListByVillage(ctx context.Context, villageID string, states ...timed.State) ([]timed.Job, error)
	Save(ctx context.Context, job timed.Job) error
}

type MovementRepository interface {
	GetByID(ctx context.Context, movementID string) (travel.Movement, error)
	// ListTravelling returns travelling movements leaving or reaching the village.
	ListTravelling(ctx context.Context, villageID string) ([]travel.Movement, error)
	Save(ctx context.Context, movement travel.Movement) error
}

type EventRepository interface {
	Append(ctx context.Context, villageID string, events []world.DomainEvent) error
	ListByVillageID(ctx context.Context, villageID string, limit int) ([]world.DomainEvent, error)
}

type ClockStateRepository interface {
	// Get returns the persisted clock epoch; ok is false when none was stored yet.
	Get(ctx context.Context) (startAt time.Time, tick time.Duration, ok bool, err error)
	Save(ctx context.Context, startAt time.Time, tick time.Duration) error
}
