package movement

import (
	"context"
	"strings"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

// CancelUseCase recalls travelling troops. They turn around and need as long
// to get home as they had already been under way.
type CancelUseCase struct {
	Deps
}

func (u CancelUseCase) Execute(ctx context.Context, req MovementRequest) (Response, error) {
	id := strings.TrimSpace(req.MovementID)
	if id == "" {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := u.Movements.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if m.Kind == travel.MovementReturn {
			return travel.ErrNotTravelling
		}
		cancelled, err := m.Cancel(now)
		if err != nil {
			return err
		}
		back, err := cancelled.Recall(u.newID())
		if err != nil {
			return err
		}
		if err := u.Movements.Save(txCtx, cancelled); err != nil {
			return err
		}
		if err := u.Movements.Save(txCtx, back); err != nil {
			return err
		}
		evt := movementEvent(world.EventMovementCancelled, cancelled, now)
		evt.Payload["return_movement_id"] = back.ID
		evt.Payload["returns_at"] = cancelled.ReturnsAt
		if err := u.Events.Append(txCtx, cancelled.From.VillageID, []world.DomainEvent{evt}); err != nil {
			return err
		}
		ret := view.FromMovement(back, cancelled.From.VillageID, now)
		out = Response{
			Notice:   notice.Success("Movement cancelled, troops are returning home."),
			Movement: view.FromMovement(cancelled, cancelled.From.VillageID, now),
			Return:   &ret,
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
