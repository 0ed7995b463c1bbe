package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"villagetick/internal/app/ports"
	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
	"villagetick/migrations"

	"gorm.io/gorm"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("VILLAGETICK_DB_DSN")
	if dsn == "" {
		t.Skip("VILLAGETICK_DB_DSN is required for integration test")
	}
	return dsn
}

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if _, err := ApplyMigrations(context.Background(), db, migrations.FS); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func resetVillage(db *gorm.DB, villageID string) {
	_ = db.Exec("DELETE FROM domain_events WHERE village_id = ?", villageID).Error
	_ = db.Exec("DELETE FROM movements WHERE from_village_id = ? OR to_village_id = ?", villageID, villageID).Error
	_ = db.Exec("DELETE FROM jobs WHERE village_id = ?", villageID).Error
	_ = db.Exec("DELETE FROM villages WHERE village_id = ?", villageID).Error
}

func TestVillageRepo_RoundTripAndVersionConflict(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	villageID := "it-village-roundtrip"
	resetVillage(db, villageID)

	now := time.Now().UTC().Truncate(time.Millisecond)
	v := world.NewVillage(villageID, "Roma", "owner-1", travel.Coordinate{X: 3, Y: -4}, &travel.GeoPoint{Lat: 41.9, Lon: 12.5}, now)
	v.Buildings[catalog.Woodcutter] = 2
	v.Research["scout"] = true
	v.AddTroops(map[string]int{"legionnaire": 7})

	repo := NewVillageRepo(db)
	if err := repo.SaveWithVersion(ctx, v, 0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.GetByID(ctx, villageID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Buildings[catalog.Woodcutter] != 2 || got.Troops["legionnaire"] != 7 || !got.Research["scout"] {
		t.Fatalf("unexpected village after round trip: %+v", got)
	}
	if got.Geo == nil || got.Geo.Lat != 41.9 {
		t.Fatalf("expected geo point, got %+v", got.Geo)
	}
	if got.Stocks[economy.Wood].Amount != world.StartingResources {
		t.Fatalf("expected wood=%d, got %v", world.StartingResources, got.Stocks[economy.Wood].Amount)
	}

	got.Version = 2
	if err := repo.SaveWithVersion(ctx, got, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	got.Version = 3
	if err := repo.SaveWithVersion(ctx, got, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict on stale version, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "it-village-missing"); !errors.Is(err, ports.ErrVillageNotFound) {
		t.Fatalf("expected ErrVillageNotFound, got %v", err)
	}
}

func TestJobAndMovementRepos_Lifecycle(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	villageID := "it-village-jobs"
	otherID := "it-village-jobs-target"
	resetVillage(db, villageID)
	resetVillage(db, otherID)

	now := time.Now().UTC().Truncate(time.Millisecond)
	villages := NewVillageRepo(db)
	if err := villages.SaveWithVersion(ctx, world.NewVillage(villageID, "A", "o", travel.Coordinate{}, nil, now), 0); err != nil {
		t.Fatalf("seed village: %v", err)
	}

	jobs := NewJobRepo(db)
	job := timed.Job{
		ID: "it-job-1", VillageID: villageID, Kind: timed.KindConstruction, Subject: "woodcutter",
		Level: 1, Quantity: 1, Cost: economy.Cost{economy.Wood: 40}, UnitDuration: 260 * time.Second,
		State: timed.StatePending, CreatedAt: now,
	}
	started, err := job.Start(now)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := jobs.Save(ctx, started); err != nil {
		t.Fatalf("save job: %v", err)
	}
	active, err := jobs.ListByVillage(ctx, villageID, timed.StateActive)
	if err != nil || len(active) != 1 {
		t.Fatalf("expected one active job, got %d err=%v", len(active), err)
	}
	if !active[0].CompletedAt.Equal(now.Add(260*time.Second)) || active[0].Cost[economy.Wood] != 40 {
		t.Fatalf("unexpected stored job %+v", active[0])
	}
	cancelled, err := started.Cancel()
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := jobs.Save(ctx, cancelled); err != nil {
		t.Fatalf("save cancelled: %v", err)
	}
	reloaded, err := jobs.GetByID(ctx, "it-job-1")
	if err != nil || reloaded.State != timed.StatePending || !reloaded.StartedAt.IsZero() {
		t.Fatalf("expected pending job with cleared start, got %+v err=%v", reloaded, err)
	}

	movements := NewMovementRepo(db)
	m, err := travel.NewMovement(travel.MovementParams{
		ID:         "it-move-1",
		Kind:       travel.MovementReinforce,
		From:       travel.Endpoint{VillageID: villageID},
		To:         travel.Endpoint{VillageID: otherID, Coordinate: travel.Coordinate{X: 3, Y: 4}},
		Units:      map[string]int{"legionnaire": 2},
		UnitSpeeds: map[string]float64{"legionnaire": 6},
		DepartedAt: now,
		Tick:       time.Second,
	})
	if err != nil {
		t.Fatalf("new movement: %v", err)
	}
	if err := movements.Save(ctx, m); err != nil {
		t.Fatalf("save movement: %v", err)
	}
	incoming, err := movements.ListTravelling(ctx, otherID)
	if err != nil || len(incoming) != 1 || incoming[0].Units["legionnaire"] != 2 {
		t.Fatalf("expected one incoming movement, got %+v err=%v", incoming, err)
	}
	if incoming[0].To.Coordinate.X != 3 || incoming[0].Distance != 5 {
		t.Fatalf("endpoint or distance lost: %+v", incoming[0])
	}
}

func TestEventRepo_NewestFirstAndRollback(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	villageID := "it-village-events"
	resetVillage(db, villageID)

	events := NewEventRepo(db)
	t0 := time.Now().UTC().Truncate(time.Millisecond)
	if err := events.Append(ctx, villageID, []world.DomainEvent{
		{Type: world.EventJobStarted, OccurredAt: t0, Payload: map[string]any{"job_id": "j1"}},
		{Type: world.EventJobCompleted, OccurredAt: t0.Add(time.Minute)},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	errBoom := errors.New("boom")
	err := NewTxManager(db).RunInTx(ctx, func(txCtx context.Context) error {
		if err := events.Append(txCtx, villageID, []world.DomainEvent{{Type: world.EventJobCancelled, OccurredAt: t0.Add(time.Hour)}}); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, err := events.ListByVillageID(ctx, villageID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Type != world.EventJobCompleted {
		t.Fatalf("expected 2 events newest first without rolled back one, got %+v", got)
	}
	if got[1].Payload["job_id"] != "j1" {
		t.Fatalf("payload lost: %+v", got[1].Payload)
	}
}

func TestClockStateRepo_SaveAndGet(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	_ = db.Exec("DELETE FROM world_clock_state").Error

	repo := NewClockStateRepo(db)
	if _, _, ok, err := repo.Get(ctx); err != nil || ok {
		t.Fatalf("expected empty clock state, ok=%v err=%v", ok, err)
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.Save(ctx, start, 2*time.Second); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, start, 3*time.Second); err != nil {
		t.Fatalf("save again: %v", err)
	}
	gotStart, tick, ok, err := repo.Get(ctx)
	if err != nil || !ok || !gotStart.Equal(start) || tick != 3*time.Second {
		t.Fatalf("unexpected clock state start=%v tick=%v ok=%v err=%v", gotStart, tick, ok, err)
	}
}
