package village

import (
	"context"
	"errors"
	"strings"
	"time"

	"villagetick/internal/app/notice"
	"villagetick/internal/app/ports"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid village request")

type FoundRequest struct {
	Name    string           `json:"name"`
	OwnerID string           `json:"owner_id"`
	X       int              `json:"x"`
	Y       int              `json:"y"`
	Geo     *travel.GeoPoint `json:"geo,omitempty"`
}

type FoundResponse struct {
	Notice  notice.Notice `json:"notice"`
	Village world.Village `json:"village"`
}

// FoundUseCase creates a new village with starting resources.
type FoundUseCase struct {
	TxManager ports.TxManager
	Villages  ports.VillageRepository
	Events    ports.EventRepository
	Now       func() time.Time
	NewID     func() string
}

func (u FoundUseCase) Execute(ctx context.Context, req FoundRequest) (FoundResponse, error) {
	name := strings.TrimSpace(req.Name)
	owner := strings.TrimSpace(req.OwnerID)
	if name == "" || owner == "" {
		return FoundResponse{}, ErrInvalidRequest
	}
	if g := req.Geo; g != nil && (g.Lat < -90 || g.Lat > 90 || g.Lon < -180 || g.Lon > 180) {
		return FoundResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	now := nowFn()

	v := world.NewVillage(newID(), name, owner, travel.Coordinate{X: req.X, Y: req.Y}, req.Geo, now)
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Villages.SaveWithVersion(txCtx, v, 0); err != nil {
			return err
		}
		return u.Events.Append(txCtx, v.ID, []world.DomainEvent{{
			Type:       world.EventVillageFounded,
			OccurredAt: now,
			Payload: map[string]any{
				"name":     v.Name,
				"owner_id": v.OwnerID,
				"x":        v.Coordinate.X,
				"y":        v.Coordinate.Y,
			},
		}})
	})
	if err != nil {
		return FoundResponse{}, err
	}
	return FoundResponse{Notice: notice.Success("Village " + v.Name + " founded."), Village: v}, nil
}
