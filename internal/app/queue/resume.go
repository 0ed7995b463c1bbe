package queue

import (
	"context"
	"strings"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/world"
)

// ResumeUseCase restarts a pending job, paying its cost again.
type ResumeUseCase struct {
	Deps
}

func (u ResumeUseCase) Execute(ctx context.Context, req JobRequest) (Response, error) {
	jobID := strings.TrimSpace(req.JobID)
	if jobID == "" {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		job, village, err := u.settleForJob(txCtx, jobID, now)
		if err != nil {
			return err
		}
		if job.State != timed.StatePending {
			return timed.ErrInvalidTransition
		}
		plan, err := village.PlanJob(job.Kind, job.Subject, job.Quantity)
		if err != nil {
			return err
		}
		// A pending upgrade is only valid for the level it was planned for.
		if job.Kind == timed.KindConstruction && job.Level != plan.Level {
			return timed.ErrInvalidTransition
		}
		active, err := u.Jobs.ListByVillage(txCtx, village.ID, timed.StateActive)
		if err != nil {
			return err
		}
		if err := timed.EnsureSlot(active, job.Kind); err != nil {
			return err
		}
		if err := village.Stocks.Spend(job.Cost); err != nil {
			return err
		}
		if job, err = job.Start(now); err != nil {
			return err
		}
		if err := u.commit(txCtx, village, job, jobEvent(world.EventJobStarted, job, now)); err != nil {
			return err
		}
		out = Response{
			Notice:    notice.Success(describe(job) + " resumed."),
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
