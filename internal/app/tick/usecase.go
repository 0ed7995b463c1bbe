package tick

import (
	"context"
	"errors"
	"strings"
	"time"

	"villagetick/internal/app/ports"
	"villagetick/internal/app/shared/view"

	"go.uber.org/zap"
)

var ErrInvalidRequest = errors.New("invalid tick request")

type UseCase struct {
	TxManager ports.TxManager
	Settler   Settler
	Metrics   ports.TickMetrics
	Logger    *zap.Logger
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
	logger := u.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := nowFn()

	var out Outcome
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		out, err = u.Settler.Settle(txCtx, villageID, now)
		return err
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else if !errors.Is(err, ports.ErrNotFound) {
				u.Metrics.RecordFailure()
			}
		}
		logger.Warn("tick failed", zap.String("village_id", villageID), zap.Error(err))
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordTick(len(out.Completed), len(out.Arrived))
	}

	tick, _ := u.Settler.Clock.TickAt(now)
	resp := Response{
		VillageID:        villageID,
		Tick:             tick,
		Resources:        view.Resources(out.Village),
		CompletedJobs:    make([]view.Job, 0, len(out.Completed)),
		ArrivedMovements: make([]view.Movement, 0, len(out.Arrived)),
		Events:           out.Events,
		Version:          out.Village.Version,
	}
	for _, j := range out.Completed {
		resp.CompletedJobs = append(resp.CompletedJobs, view.FromJob(j, now))
	}
	for _, m := range out.Arrived {
		resp.ArrivedMovements = append(resp.ArrivedMovements, view.FromMovement(m, villageID, now))
	}
	if len(out.Events) > 0 {
		logger.Info("village settled",
			zap.String("village_id", villageID),
			zap.Int64("tick", tick),
			zap.Int("completed_jobs", len(out.Completed)),
			zap.Int("arrived_movements", len(out.Arrived)),
			zap.Int64("version", out.Village.Version),
		)
	}
	return resp, nil
}
