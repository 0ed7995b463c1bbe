package movement

import (
	"context"
	"fmt"
	"strings"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

// DispatchUseCase sends troops from one village to another.
type DispatchUseCase struct {
	Deps
}

func (u DispatchUseCase) Execute(ctx context.Context, req DispatchRequest) (Response, error) {
	req.FromVillageID = strings.TrimSpace(req.FromVillageID)
	req.ToVillageID = strings.TrimSpace(req.ToVillageID)
	kind, ok := travel.ParseMovementKind(string(req.Kind))
	if !ok || kind == travel.MovementReturn || req.FromVillageID == "" || req.ToVillageID == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.FromVillageID == req.ToVillageID {
		return Response{}, travel.ErrSameVillage
	}
	units := map[string]int{}
	for name, n := range req.Units {
		name = strings.ToLower(strings.TrimSpace(name))
		if n < 0 {
			return Response{}, ErrInvalidRequest
		}
		if n > 0 {
			units[name] += n
		}
	}
	if len(units) == 0 {
		return Response{}, travel.ErrNoUnits
	}
	speeds, err := catalog.UnitSpeeds(units)
	if err != nil {
		return Response{}, err
	}
	now := u.now()

	var out Response
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		origin, err := u.settle(txCtx, req.FromVillageID, now)
		if err != nil {
			return err
		}
		target, err := u.Villages.GetByID(txCtx, req.ToVillageID)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		if err := origin.RemoveTroops(units); err != nil {
			return err
		}
		m, err := travel.NewMovement(travel.MovementParams{
			ID:         u.newID(),
			Kind:       kind,
			From:       origin.Endpoint(),
			To:         target.Endpoint(),
			Units:      units,
			UnitSpeeds: speeds,
			DepartedAt: now,
			Tick:       u.Clock.TickDuration(),
		})
		if err != nil {
			return err
		}
		if err := u.Movements.Save(txCtx, m); err != nil {
			return err
		}
		expected := origin.Version
		origin.Version++
		if err := u.Villages.SaveWithVersion(txCtx, origin, expected); err != nil {
			return err
		}
		if err := u.Events.Append(txCtx, origin.ID, []world.DomainEvent{movementEvent(world.EventMovementDispatched, m, now)}); err != nil {
			return err
		}
		travelTime := economy.FormatDuration(m.ArrivesAt.Sub(m.DepartedAt))
		out = Response{
			Notice:   notice.Success(fmt.Sprintf("Troops sent to %s, arriving in %s.", target.Name, travelTime)),
			Movement: view.FromMovement(m, origin.ID, now),
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
