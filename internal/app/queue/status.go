package queue

import (
	"context"
	"strings"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/timed"
)

// StatusUseCase reports a job after settling its village, so a job past its
// completion time is reported completed.
type StatusUseCase struct {
	Deps
}

func (u StatusUseCase) Execute(ctx context.Context, req JobRequest) (Response, error) {
	jobID := strings.TrimSpace(req.JobID)
	if jobID == "" {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()

	var job timed.Job
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		job, _, err = u.settleForJob(txCtx, jobID, now)
		return err
	})
	if err != nil {
		return Response{}, err
	}
	msg := describe(job) + " is " + string(job.State) + "."
	return Response{Notice: notice.Success(msg), Job: view.FromJob(job, now)}, nil
}
