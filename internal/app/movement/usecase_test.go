package movement

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"villagetick/internal/adapter/repo/memory"
	"villagetick/internal/app/ports"
	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	store *memory.Store
	now   time.Time
	deps  Deps
}

func newHarness() *harness {
	h := &harness{store: memory.NewStore(), now: t0}
	ids := 0
	h.deps = Deps{
		TxManager: memory.NewTxManager(h.store),
		Villages:  memory.NewVillageRepo(h.store),
		Jobs:      memory.NewJobRepo(h.store),
		Movements: memory.NewMovementRepo(h.store),
		Events:    memory.NewEventRepo(h.store),
		Clock:     world.NewClock(world.ClockConfig{StartAt: t0, TickDuration: time.Minute}),
		Now:       func() time.Time { return h.now },
		NewID: func() string {
			ids++
			return fmt.Sprintf("m%d", ids)
		},
	}

	rome := world.NewVillage("rome", "Rome", "p1", travel.Coordinate{X: 0, Y: 0}, &travel.GeoPoint{Lat: 41.9028, Lon: 12.4964}, t0)
	rome.Buildings[catalog.Barracks] = 1
	rome.AddTroops(map[string]int{"legionnaire": 10, "equites": 2})
	ostia := world.NewVillage("ostia", "Ostia", "p1", travel.Coordinate{X: 30, Y: 40}, &travel.GeoPoint{Lat: 41.7556, Lon: 12.2889}, t0)
	h.store.SeedVillage(rome)
	h.store.SeedVillage(ostia)
	return h
}

func (h *harness) village(t *testing.T, id string) world.Village {
	t.Helper()
	v, err := h.deps.Villages.GetByID(context.Background(), id)
	require.NoError(t, err)
	return v
}

func TestDispatch_DeductsTroopsAndComputesTravel(t *testing.T) {
	h := newHarness()
	resp, err := DispatchUseCase{h.deps}.Execute(context.Background(), DispatchRequest{
		Kind: "reinforce", FromVillageID: "rome", ToVillageID: "ostia",
		Units: map[string]int{"Legionnaire": 4, "equites": 2},
	})
	require.NoError(t, err)

	// distance 50, slowest legionnaire at 6 fields per tick
	assert.Equal(t, 50.0, resp.Movement.Distance)
	assert.Equal(t, int64(9), resp.Movement.TravelTicks)
	assert.True(t, resp.Movement.ArrivesAt.Equal(t0.Add(9*time.Minute)))
	assert.InDelta(t, 24.0, resp.Movement.RealDistanceKm, 2.0)
	assert.Equal(t, "Troops sent to Ostia, arriving in 00:09:00.", resp.Notice.Message)

	rome := h.village(t, "rome")
	assert.Equal(t, map[string]int{"legionnaire": 6}, rome.Troops)
	assert.Equal(t, int64(3), rome.Version, "settled once, then saved with the troops gone")
}

func TestDispatch_Errors(t *testing.T) {
	h := newHarness()
	uc := DispatchUseCase{h.deps}
	ctx := context.Background()

	_, err := uc.Execute(ctx, DispatchRequest{Kind: "reinforce", FromVillageID: "rome", ToVillageID: "carthage", Units: map[string]int{"legionnaire": 1}})
	assert.ErrorIs(t, err, ports.ErrVillageNotFound)

	_, err = uc.Execute(ctx, DispatchRequest{Kind: "attack", FromVillageID: "rome", ToVillageID: "ostia", Units: map[string]int{"legionnaire": 11}})
	assert.ErrorIs(t, err, world.ErrNotEnoughTroops)

	_, err = uc.Execute(ctx, DispatchRequest{Kind: "attack", FromVillageID: "rome", ToVillageID: "rome", Units: map[string]int{"legionnaire": 1}})
	assert.ErrorIs(t, err, travel.ErrSameVillage)

	_, err = uc.Execute(ctx, DispatchRequest{Kind: "attack", FromVillageID: "rome", ToVillageID: "ostia", Units: map[string]int{"legionnaire": 0}})
	assert.ErrorIs(t, err, travel.ErrNoUnits)

	_, err = uc.Execute(ctx, DispatchRequest{Kind: "return", FromVillageID: "rome", ToVillageID: "ostia", Units: map[string]int{"legionnaire": 1}})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = uc.Execute(ctx, DispatchRequest{Kind: "attack", FromVillageID: "rome", ToVillageID: "ostia", Units: map[string]int{"catapult": 1}})
	assert.ErrorIs(t, err, catalog.ErrUnknownUnit)

	assert.Equal(t, 10, h.village(t, "rome").Troops["legionnaire"], "failed dispatches must not move troops")
}

func TestCancel_RecallsTroops(t *testing.T) {
	h := newHarness()
	sent, err := DispatchUseCase{h.deps}.Execute(context.Background(), DispatchRequest{
		Kind: "attack", FromVillageID: "rome", ToVillageID: "ostia", Units: map[string]int{"legionnaire": 3},
	})
	require.NoError(t, err)

	h.now = t0.Add(3 * time.Minute)
	resp, err := CancelUseCase{h.deps}.Execute(context.Background(), MovementRequest{MovementID: sent.Movement.ID})
	require.NoError(t, err)
	assert.Equal(t, travel.StatusCancelled, resp.Movement.Status)
	require.NotNil(t, resp.Return)
	assert.Equal(t, travel.MovementReturn, resp.Return.Kind)
	assert.True(t, resp.Return.ArrivesAt.Equal(t0.Add(6*time.Minute)))

	_, err = CancelUseCase{h.deps}.Execute(context.Background(), MovementRequest{MovementID: sent.Movement.ID})
	assert.ErrorIs(t, err, travel.ErrNotTravelling)
	_, err = CancelUseCase{h.deps}.Execute(context.Background(), MovementRequest{MovementID: resp.Return.ID})
	assert.ErrorIs(t, err, travel.ErrNotTravelling)

	h.now = t0.Add(6 * time.Minute)
	status, err := StatusUseCase{h.deps}.Execute(context.Background(), MovementRequest{MovementID: resp.Return.ID})
	require.NoError(t, err)
	assert.Equal(t, travel.StatusCompleted, status.Movement.Status)
	assert.Equal(t, 10, h.village(t, "rome").Troops["legionnaire"])
}

func TestStatus_MissingMovement(t *testing.T) {
	h := newHarness()
	_, err := StatusUseCase{h.deps}.Execute(context.Background(), MovementRequest{MovementID: "ghost"})
	if !errors.Is(err, ports.ErrMovementNotFound) {
		t.Fatalf("expected ErrMovementNotFound, got %v", err)
	}
}

func TestDistance_NoSideEffects(t *testing.T) {
	h := newHarness()
	resp, err := DistanceUseCase{h.deps}.Execute(context.Background(), DistanceRequest{
		FromVillageID: "rome", ToVillageID: "ostia", Units: map[string]int{"equites": 1, "scout": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.Distance)
	assert.Equal(t, 14.0, resp.Speed)
	assert.Equal(t, int64(4), resp.TravelTicks)
	assert.Equal(t, int64(240), resp.TravelSeconds)
	assert.Equal(t, "00:04:00", resp.TravelTime)

	bare, err := DistanceUseCase{h.deps}.Execute(context.Background(), DistanceRequest{FromVillageID: "rome", ToVillageID: "ostia"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), bare.TravelTicks)

	assert.Equal(t, int64(1), h.village(t, "rome").Version)
}
