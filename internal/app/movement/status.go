package movement

import (
	"context"
	"strings"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/travel"
)

// StatusUseCase reports a movement, landing it first when it has arrived.
type StatusUseCase struct {
	Deps
}

func (u StatusUseCase) Execute(ctx context.Context, req MovementRequest) (Response, error) {
	id := strings.TrimSpace(req.MovementID)
	if id == "" {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()

	var m travel.Movement
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if m, err = u.Movements.GetByID(txCtx, id); err != nil {
			return err
		}
		if !m.Arrived(now) {
			return nil
		}
		if _, err := u.settle(txCtx, m.To.VillageID, now); err != nil {
			return err
		}
		m, err = u.Movements.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return Response{}, err
	}
	return Response{
		Notice:   notice.Success("Movement is " + string(m.Status) + "."),
		Movement: view.FromMovement(m, "", now),
	}, nil
}
