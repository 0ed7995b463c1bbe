package queue

import (
	"context"
	"strings"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/world"
)

// CompleteUseCase finishes an active job right away and applies its effect.
type CompleteUseCase struct {
	Deps
}

func (u CompleteUseCase) Execute(ctx context.Context, req JobRequest) (Response, error) {
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
		done, err := job.Complete(now)
		if err != nil {
			return err
		}
		village.ApplyCompletedJob(done)
		evt := jobEvent(world.EventJobCompleted, done, now)
		evt.Payload["instant"] = true
		if err := u.commit(txCtx, village, done, evt); err != nil {
			return err
		}
		out = Response{
			Notice:    notice.Success(describe(done) + " completed."),
			Job:       view.FromJob(done, now),
			Resources: view.Resources(village),
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
