package replay

import (
	"context"
	"errors"
	"strings"

	"villagetick/internal/app/ports"
	"villagetick/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type UseCase struct {
	TxManager ports.TxManager
	Villages  ports.VillageRepository
	Events    ports.EventRepository
}

// Execute lists a village's events, newest first. Filters apply before the
// limit.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	villageID := strings.TrimSpace(req.VillageID)
	if villageID == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var events []world.DomainEvent
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := u.Villages.GetByID(txCtx, villageID); err != nil {
			return err
		}
		var err error
		events, err = u.Events.ListByVillageID(txCtx, villageID, 0)
		return err
	})
	if err != nil {
		return Response{}, err
	}

	events = filterByType(events, req.Types)
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	if len(events) > limit {
		events = events[:limit]
	}
	return Response{VillageID: villageID, Events: events}, nil
}

func filterByType(events []world.DomainEvent, types []string) []world.DomainEvent {
	if len(types) == 0 {
		return events
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[strings.TrimSpace(t)] = true
	}
	out := make([]world.DomainEvent, 0, len(events))
	for _, evt := range events {
		if want[evt.Type] {
			out = append(out, evt)
		}
	}
	return out
}

func filterByTimeWindow(events []world.DomainEvent, from, to int64) []world.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]world.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}
