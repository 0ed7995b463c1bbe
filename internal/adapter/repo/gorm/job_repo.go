package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"villagetick/internal/adapter/repo/gorm/model"
	"villagetick/internal/app/ports"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/timed"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepo {
	return JobRepo{db: db}
}

func (r JobRepo) GetByID(ctx context.Context, jobID string) (timed.Job, error) {
	var m model.Job
	if err := dbFor(ctx, r.db).Where("job_id = ?", jobID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return timed.Job{}, ports.ErrJobNotFound
		}
		return timed.Job{}, err
	}
	return jobFromModel(m)
}

func (r JobRepo) ListByVillage(ctx context.Context, villageID string, states ...timed.State) ([]timed.Job, error) {
	query := dbFor(ctx, r.db).Where("village_id = ?", villageID)
	if len(states) > 0 {
		raw := make([]string, 0, len(states))
		for _, s := range states {
			raw = append(raw, string(s))
		}
		query = query.Where("state IN ?", raw)
	}
	rows := []model.Job{}
	if err := query.Order("created_at ASC, job_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]timed.Job, 0, len(rows))
	for _, row := range rows {
		j, err := jobFromModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

func (r JobRepo) Save(ctx context.Context, job timed.Job) error {
	m, err := jobToModel(job)
	if err != nil {
		return err
	}
	return dbFor(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "level", "quantity", "cost", "started_at", "completed_at"}),
		}).
		Create(&m).Error
}

func jobToModel(job timed.Job) (model.Job, error) {
	cost, err := json.Marshal(job.Cost)
	if err != nil {
		return model.Job{}, fmt.Errorf("encode cost: %w", err)
	}
	return model.Job{
		JobID:          job.ID,
		VillageID:      job.VillageID,
		Kind:           string(job.Kind),
		Subject:        job.Subject,
		Level:          int32(job.Level),
		Quantity:       int32(job.Quantity),
		Cost:           cost,
		UnitDurationMs: job.UnitDuration.Milliseconds(),
		State:          string(job.State),
		StartedAt:      optionalTime(job.StartedAt),
		CompletedAt:    optionalTime(job.CompletedAt),
		CreatedAt:      job.CreatedAt,
	}, nil
}

func jobFromModel(m model.Job) (timed.Job, error) {
	j := timed.Job{
		ID:           m.JobID,
		VillageID:    m.VillageID,
		Kind:         timed.Kind(m.Kind),
		Subject:      m.Subject,
		Level:        int(m.Level),
		Quantity:     int(m.Quantity),
		UnitDuration: time.Duration(m.UnitDurationMs) * time.Millisecond,
		State:        timed.State(m.State),
		CreatedAt:    m.CreatedAt,
	}
	if m.StartedAt != nil {
		j.StartedAt = *m.StartedAt
	}
	if m.CompletedAt != nil {
		j.CompletedAt = *m.CompletedAt
	}
	cost := economy.Cost{}
	if err := decodeColumn("cost", m.Cost, &cost); err != nil {
		return timed.Job{}, err
	}
	j.Cost = cost
	return j, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
