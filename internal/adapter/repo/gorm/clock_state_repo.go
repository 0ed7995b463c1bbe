package gormrepo

import (
	"context"
	"errors"
	"time"

	"villagetick/internal/adapter/repo/gorm/model"

	"gorm.io/gorm"
)

const clockStateKey = "global"

type ClockStateRepo struct {
	db *gorm.DB
}

func NewClockStateRepo(db *gorm.DB) ClockStateRepo {
	return ClockStateRepo{db: db}
}

func (r ClockStateRepo) Get(ctx context.Context) (time.Time, time.Duration, bool, error) {
	var row model.WorldClockState
	err := r.db.WithContext(ctx).
		Where(&model.WorldClockState{StateKey: clockStateKey}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, 0, false, nil
		}
		return time.Time{}, 0, false, err
	}
	return row.StartAt, time.Duration(row.TickMs) * time.Millisecond, true, nil
}

func (r ClockStateRepo) Save(ctx context.Context, startAt time.Time, tick time.Duration) error {
	return r.db.WithContext(ctx).
		Where(&model.WorldClockState{StateKey: clockStateKey}).
		Assign(model.WorldClockState{
			StartAt:   startAt,
			TickMs:    tick.Milliseconds(),
			UpdatedAt: time.Now(),
		}).
		FirstOrCreate(&model.WorldClockState{}).Error
}
