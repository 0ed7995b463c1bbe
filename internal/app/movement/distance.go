package movement

import (
	"context"
	"strings"
	"time"

	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

// DistanceUseCase answers how far apart two villages are and how long a unit
// selection would travel. Nothing is persisted.
type DistanceUseCase struct {
	Deps
}

func (u DistanceUseCase) Execute(ctx context.Context, req DistanceRequest) (DistanceResponse, error) {
	from := strings.TrimSpace(req.FromVillageID)
	to := strings.TrimSpace(req.ToVillageID)
	if from == "" || to == "" {
		return DistanceResponse{}, ErrInvalidRequest
	}

	var origin, target world.Village
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if origin, err = u.Villages.GetByID(txCtx, from); err != nil {
			return err
		}
		target, err = u.Villages.GetByID(txCtx, to)
		return err
	})
	if err != nil {
		return DistanceResponse{}, err
	}

	out := DistanceResponse{
		FromVillageID: from,
		ToVillageID:   to,
		Distance:      travel.Euclidean(origin.Coordinate, target.Coordinate),
		TravelTime:    economy.FormatDuration(0),
	}
	if origin.Geo != nil && target.Geo != nil {
		out.RealDistanceKm = travel.Haversine(*origin.Geo, *target.Geo)
	}
	selection := map[string]int{}
	for name, n := range req.Units {
		if n > 0 {
			selection[strings.ToLower(strings.TrimSpace(name))] = n
		}
	}
	if len(selection) == 0 {
		return out, nil
	}

	speeds, err := catalog.UnitSpeeds(selection)
	if err != nil {
		return DistanceResponse{}, err
	}
	list := make([]float64, 0, len(speeds))
	for _, s := range speeds {
		list = append(list, s)
	}
	ticks, err := travel.TravelTicks(out.Distance, list)
	if err != nil {
		return DistanceResponse{}, err
	}
	out.Speed, _ = travel.SlowestSpeed(list)
	out.TravelTicks = ticks
	d := u.Clock.TicksToDuration(ticks)
	out.TravelSeconds = int64(d / time.Second)
	out.TravelTime = economy.FormatDuration(d)
	return out, nil
}
