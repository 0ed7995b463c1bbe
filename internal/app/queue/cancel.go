package queue

import (
	"context"
	"strings"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/world"
)

// CancelUseCase stops an active job and refunds its cost in full; the job goes
// back to pending and can be resumed. Cancelling a pending job abandons it.
type CancelUseCase struct {
	Deps
}

func (u CancelUseCase) Execute(ctx context.Context, req JobRequest) (Response, error) {
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

		var (
			next    timed.Job
			message string
			event   world.DomainEvent
		)
		switch job.State {
		case timed.StateActive:
			if next, err = job.Cancel(); err != nil {
				return err
			}
			lost := village.Stocks.Refund(job.Cost)
			message = describe(job) + " cancelled, resources refunded."
			if !lost.IsZero() {
				message = describe(job) + " cancelled, storage full: " + formatCost(lost) + " could not be refunded."
			}
			event = jobEvent(world.EventJobCancelled, next, now)
			event.Payload["refund_lost"] = lost
		default:
			if next, err = job.Abandon(); err != nil {
				return err
			}
			message = describe(job) + " removed from the queue."
			event = jobEvent(world.EventJobAbandoned, next, now)
		}
		if err := u.commit(txCtx, village, next, event); err != nil {
			return err
		}
		out = Response{
			Notice:    notice.Success(message),
			Job:       view.FromJob(next, now),
			Resources: view.Resources(village),
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
