package status

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"villagetick/internal/app/ports"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid status request")

// UseCase shows a village as of now without persisting anything; work that
// finished since the last tick is applied to the view only.
type UseCase struct {
	TxManager ports.TxManager
	Villages  ports.VillageRepository
	Jobs      ports.JobRepository
	Movements ports.MovementRepository
	Clock     world.Clock
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	villageID := strings.TrimSpace(req.VillageID)
	if villageID == "" {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	var (
		village   world.Village
		jobs      []timed.Job
		movements []travel.Movement
	)
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if village, err = u.Villages.GetByID(txCtx, villageID); err != nil {
			return err
		}
		if jobs, err = u.Jobs.ListByVillage(txCtx, villageID, timed.StateActive, timed.StatePending); err != nil {
			return err
		}
		movements, err = u.Movements.ListTravelling(txCtx, villageID)
		return err
	})
	if err != nil {
		return Response{}, err
	}

	finished := map[string]bool{}
	pending := make([]travel.Movement, 0, len(movements))
	for _, m := range movements {
		if m.From.VillageID == villageID && m.To.VillageID != villageID && m.Arrived(now) {
			// Arrived elsewhere; only the way home matters here.
			finished[m.ID] = true
			if m.Kind == travel.MovementAttack {
				pending = append(pending, m.ReturnHome("", m.ArrivesAt, u.Clock.TickDuration()))
			}
			continue
		}
		pending = append(pending, m)
	}

	p := world.Advance(village, jobs, pending, now)
	settled := p.Village
	for _, j := range p.Completed {
		finished[j.ID] = true
	}
	for _, m := range p.Arrived {
		finished[m.ID] = true
	}

	tick, next := u.Clock.TickAt(now)
	resp := Response{
		VillageID:         settled.ID,
		Name:              settled.Name,
		OwnerID:           settled.OwnerID,
		Coordinate:        settled.Coordinate,
		Resources:         view.Resources(settled),
		Buildings:         settled.Buildings,
		Troops:            settled.Troops,
		Research:          researched(settled),
		Jobs:              []view.Job{},
		Movements:         []view.Movement{},
		Tick:              tick,
		NextTickInSeconds: next.Seconds(),
		EvaluatedAt:       settled.EvaluatedAt,
		Version:           village.Version,
	}
	for _, j := range jobs {
		if finished[j.ID] {
			continue
		}
		resp.Jobs = append(resp.Jobs, view.FromJob(j, now))
	}
	for _, m := range movements {
		if finished[m.ID] {
			continue
		}
		resp.Movements = append(resp.Movements, view.FromMovement(m, villageID, now))
	}
	return resp, nil
}

func researched(v world.Village) []string {
	out := make([]string, 0, len(v.Research))
	for name, ok := range v.Research {
		if ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
