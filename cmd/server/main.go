package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	httpadapter "villagetick/internal/adapter/http"
	metricsinmem "villagetick/internal/adapter/metrics/inmemory"
	gormrepo "villagetick/internal/adapter/repo/gorm"
	"villagetick/internal/adapter/repo/memory"
	"villagetick/internal/app/movement"
	"villagetick/internal/app/ports"
	"villagetick/internal/app/queue"
	"villagetick/internal/app/replay"
	"villagetick/internal/app/status"
	"villagetick/internal/app/tick"
	"villagetick/internal/app/village"
	"villagetick/internal/config"
	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
	"villagetick/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", envOr("VILLAGETICK_CONFIG", "villagetick.yaml"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := cfg.Logging.Build()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	repos, err := buildRepos(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("build repositories", zap.Error(err))
	}
	clock, err := resolveClock(ctx, repos.clockState, cfg.Clock, logger)
	if err != nil {
		logger.Fatal("resolve clock", zap.Error(err))
	}
	if cfg.Demo.Seed {
		if err := seedDemo(ctx, repos, time.Now()); err != nil {
			logger.Fatal("seed demo villages", zap.Error(err))
		}
	}

	kpiRecorder := metricsinmem.NewRecorder()
	h := newHandler(repos, clock, kpiRecorder, logger, time.Now)

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	s.Use(httpadapter.AccessLog(logger, kpiRecorder))
	h.RegisterRoutes(s)

	logger.Info("villagetick server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("storage", repos.kind),
		zap.Duration("tick", clock.TickDuration()),
	)
	s.Spin()
}

type repositories struct {
	kind       string
	tx         ports.TxManager
	villages   ports.VillageRepository
	jobs       ports.JobRepository
	movements  ports.MovementRepository
	events     ports.EventRepository
	clockState ports.ClockStateRepository
}

// buildRepos uses postgres when a DSN is configured and process memory
// otherwise.
func buildRepos(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (repositories, error) {
	if cfg.DSN == "" {
		store := memory.NewStore()
		return repositories{
			kind:       "memory",
			tx:         memory.NewTxManager(store),
			villages:   memory.NewVillageRepo(store),
			jobs:       memory.NewJobRepo(store),
			movements:  memory.NewMovementRepo(store),
			events:     memory.NewEventRepo(store),
			clockState: memory.NewClockStateRepo(store),
		}, nil
	}

	db, err := gormrepo.OpenPostgres(cfg.DSN)
	if err != nil {
		return repositories{}, err
	}
	if cfg.AutoMigrate {
		applied, err := gormrepo.ApplyMigrations(ctx, db, migrations.FS)
		if err != nil {
			return repositories{}, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations checked", zap.Strings("applied", applied))
	}
	return repositories{
		kind:       "postgres",
		tx:         gormrepo.NewTxManager(db),
		villages:   gormrepo.NewVillageRepo(db),
		jobs:       gormrepo.NewJobRepo(db),
		movements:  gormrepo.NewMovementRepo(db),
		events:     gormrepo.NewEventRepo(db),
		clockState: gormrepo.NewClockStateRepo(db),
	}, nil
}

// resolveClock pins the tick epoch on first start. Later starts keep the
// stored epoch so tick numbers never jump.
func resolveClock(ctx context.Context, store ports.ClockStateRepository, cfg config.ClockConfig, logger *zap.Logger) (world.Clock, error) {
	startAt, tickDuration, ok, err := store.Get(ctx)
	if err != nil {
		return world.Clock{}, fmt.Errorf("load clock state: %w", err)
	}
	if !ok {
		startAt, tickDuration = cfg.StartAt(), cfg.Tick()
		if err := store.Save(ctx, startAt, tickDuration); err != nil {
			return world.Clock{}, fmt.Errorf("save clock state: %w", err)
		}
	} else if tickDuration != cfg.Tick() || !startAt.Equal(cfg.StartAt()) {
		logger.Warn("stored clock differs from config, keeping stored values",
			zap.Time("stored_start_at", startAt),
			zap.Duration("stored_tick", tickDuration),
			zap.Duration("config_tick", cfg.Tick()),
		)
	}
	return world.NewClock(world.ClockConfig{StartAt: startAt, TickDuration: tickDuration}), nil
}

const (
	demoVillageA = "demo-rome"
	demoVillageB = "demo-capua"
)

// seedDemo creates two villages to play with unless they already exist.
func seedDemo(ctx context.Context, repos repositories, now time.Time) error {
	rome := world.NewVillage(demoVillageA, "Roma", "demo-player", travel.Coordinate{X: 0, Y: 0}, &travel.GeoPoint{Lat: 41.9028, Lon: 12.4964}, now)
	rome.Buildings[catalog.Barracks] = 1
	rome.Buildings[catalog.Woodcutter] = 1
	rome.AddTroops(map[string]int{"legionnaire": 20})

	capua := world.NewVillage(demoVillageB, "Capua", "demo-neighbour", travel.Coordinate{X: 12, Y: -9}, &travel.GeoPoint{Lat: 41.1056, Lon: 14.2128}, now)

	return repos.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, v := range []world.Village{rome, capua} {
			_, err := repos.villages.GetByID(txCtx, v.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, ports.ErrNotFound) {
				return err
			}
			if err := repos.villages.SaveWithVersion(txCtx, v, 0); err != nil {
				return fmt.Errorf("seed %s: %w", v.ID, err)
			}
			if err := repos.events.Append(txCtx, v.ID, []world.DomainEvent{{
				Type:       world.EventVillageFounded,
				OccurredAt: now,
				Payload:    map[string]any{"name": v.Name, "owner_id": v.OwnerID, "demo": true},
			}}); err != nil {
				return err
			}
		}
		return nil
	})
}

func newHandler(repos repositories, clock world.Clock, kpi *metricsinmem.Recorder, logger *zap.Logger, now func() time.Time) httpadapter.Handler {
	queueDeps := queue.Deps{
		TxManager: repos.tx,
		Villages:  repos.villages,
		Jobs:      repos.jobs,
		Movements: repos.movements,
		Events:    repos.events,
		Clock:     clock,
		Now:       now,
	}
	movementDeps := movement.Deps{
		TxManager: repos.tx,
		Villages:  repos.villages,
		Jobs:      repos.jobs,
		Movements: repos.movements,
		Events:    repos.events,
		Clock:     clock,
		Now:       now,
	}
	return httpadapter.Handler{
		FoundUC: village.FoundUseCase{TxManager: repos.tx, Villages: repos.villages, Events: repos.events, Now: now},
		StatusUC: status.UseCase{
			TxManager: repos.tx,
			Villages:  repos.villages,
			Jobs:      repos.jobs,
			Movements: repos.movements,
			Clock:     clock,
			Now:       now,
		},
		ReplayUC: replay.UseCase{TxManager: repos.tx, Villages: repos.villages, Events: repos.events},
		TickUC: tick.UseCase{
			TxManager: repos.tx,
			Settler: tick.Settler{
				Villages:  repos.villages,
				Jobs:      repos.jobs,
				Movements: repos.movements,
				Events:    repos.events,
				Clock:     clock,
			},
			Metrics: kpi,
			Logger:  logger.Named("tick"),
			Now:     now,
		},
		StartJobUC:       queue.StartUseCase{Deps: queueDeps},
		JobStatusUC:      queue.StatusUseCase{Deps: queueDeps},
		CancelJobUC:      queue.CancelUseCase{Deps: queueDeps},
		ResumeJobUC:      queue.ResumeUseCase{Deps: queueDeps},
		CompleteJobUC:    queue.CompleteUseCase{Deps: queueDeps},
		DispatchUC:       movement.DispatchUseCase{Deps: movementDeps},
		MovementStatusUC: movement.StatusUseCase{Deps: movementDeps},
		CancelMovementUC: movement.CancelUseCase{Deps: movementDeps},
		DistanceUC:       movement.DistanceUseCase{Deps: movementDeps},
		KPI:              kpi,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
