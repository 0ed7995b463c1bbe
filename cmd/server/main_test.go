package main

import (
	"context"
	"testing"
	"time"

	metricsinmem "villagetick/internal/adapter/metrics/inmemory"
	"villagetick/internal/app/queue"
	"villagetick/internal/app/status"
	"villagetick/internal/config"
	"villagetick/internal/domain/timed"

	"go.uber.org/zap"
)

func memoryRepos(t *testing.T) repositories {
	t.Helper()
	repos, err := buildRepos(context.Background(), config.DatabaseConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("buildRepos: %v", err)
	}
	if repos.kind != "memory" {
		t.Fatalf("expected memory repositories without a DSN, got %s", repos.kind)
	}
	return repos
}

func TestResolveClock_PersistsFirstEpoch(t *testing.T) {
	repos := memoryRepos(t)
	ctx := context.Background()
	cfg := config.ClockConfig{StartUnix: 1767225600, TickMs: 2000}

	clock, err := resolveClock(ctx, repos.clockState, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("resolveClock: %v", err)
	}
	if clock.TickDuration() != 2*time.Second || !clock.StartAt().Equal(cfg.StartAt()) {
		t.Fatalf("unexpected clock start=%v tick=%v", clock.StartAt(), clock.TickDuration())
	}

	again, err := resolveClock(ctx, repos.clockState, config.ClockConfig{TickMs: 500}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolveClock again: %v", err)
	}
	if again.TickDuration() != 2*time.Second {
		t.Fatalf("stored tick must win over config, got %v", again.TickDuration())
	}
}

func TestSeedDemo_IsIdempotent(t *testing.T) {
	repos := memoryRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := seedDemo(ctx, repos, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := seedDemo(ctx, repos, now.Add(time.Hour)); err != nil {
		t.Fatalf("seed again: %v", err)
	}
	rome, err := repos.villages.GetByID(ctx, demoVillageA)
	if err != nil {
		t.Fatalf("get rome: %v", err)
	}
	if rome.Version != 1 || rome.Troops["legionnaire"] != 20 {
		t.Fatalf("unexpected seeded village %+v", rome)
	}
	events, err := repos.events.ListByVillageID(ctx, demoVillageA, 0)
	if err != nil || len(events) != 1 {
		t.Fatalf("expected one founding event, got %d err=%v", len(events), err)
	}
}

func TestNewHandler_WiresUseCases(t *testing.T) {
	repos := memoryRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := seedDemo(ctx, repos, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	clock, err := resolveClock(ctx, repos.clockState, config.ClockConfig{TickMs: 1000}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolveClock: %v", err)
	}
	h := newHandler(repos, clock, metricsinmem.NewRecorder(), zap.NewNop(), func() time.Time { return now })

	started, err := h.StartJobUC.Execute(ctx, queue.StartRequest{VillageID: demoVillageA, Kind: timed.KindConstruction, Subject: "cropland"})
	if err != nil {
		t.Fatalf("start job: %v", err)
	}
	if started.Job.State != timed.StateActive {
		t.Fatalf("expected active job, got %s", started.Job.State)
	}
	overview, err := h.StatusUC.Execute(ctx, status.Request{VillageID: demoVillageA})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(overview.Jobs) != 1 {
		t.Fatalf("expected the running job in the overview, got %d", len(overview.Jobs))
	}
}
