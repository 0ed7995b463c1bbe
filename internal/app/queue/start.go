package queue

import (
	"context"
	"strings"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/world"
)

// StartUseCase pays for and starts a new construction, research or training
// batch.
type StartUseCase struct {
	Deps
}

func (u StartUseCase) Execute(ctx context.Context, req StartRequest) (Response, error) {
	req.VillageID = strings.TrimSpace(req.VillageID)
	req.Kind = timed.Kind(strings.ToLower(strings.TrimSpace(string(req.Kind))))
	if req.VillageID == "" || strings.TrimSpace(req.Subject) == "" || !req.Kind.Valid() {
		return Response{}, ErrInvalidRequest
	}
	if req.Kind != timed.KindTraining {
		req.Quantity = 1
	}
	now := u.now()

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		settled, err := u.settler().Settle(txCtx, req.VillageID, now)
		if err != nil {
			return err
		}
		village := settled.Village

		active, err := u.Jobs.ListByVillage(txCtx, village.ID, timed.StateActive)
		if err != nil {
			return err
		}
		if err := timed.EnsureSlot(active, req.Kind); err != nil {
			return err
		}
		plan, err := village.PlanJob(req.Kind, req.Subject, req.Quantity)
		if err != nil {
			return err
		}
		if err := village.Stocks.Spend(plan.Cost); err != nil {
			return err
		}
		job := plan.Job(u.newID(), now)
		job.VillageID = village.ID
		if job, err = job.Start(now); err != nil {
			return err
		}
		if err := u.commit(txCtx, village, job, jobEvent(world.EventJobStarted, job, now)); err != nil {
			return err
		}
		out = Response{
			Notice:    notice.Success(describe(job) + " started."),
			Job:       view.FromJob(job, now),
			Resources: view.Resources(village),
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
