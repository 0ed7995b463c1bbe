package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"villagetick/internal/adapter/repo/gorm/model"
	"villagetick/internal/app/ports"
	"villagetick/internal/domain/travel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepo {
	return MovementRepo{db: db}
}

func (r MovementRepo) GetByID(ctx context.Context, movementID string) (travel.Movement, error) {
	var m model.Movement
	if err := dbFor(ctx, r.db).Where("movement_id = ?", movementID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return travel.Movement{}, ports.ErrMovementNotFound
		}
		return travel.Movement{}, err
	}
	return movementFromModel(m)
}

func (r MovementRepo) ListTravelling(ctx context.Context, villageID string) ([]travel.Movement, error) {
	rows := []model.Movement{}
	err := dbFor(ctx, r.db).
		Where("status = ?", string(travel.StatusTravelling)).
		Where("(from_village_id = ? OR to_village_id = ?)", villageID, villageID).
		Order("arrives_at ASC, movement_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]travel.Movement, 0, len(rows))
	for _, row := range rows {
		m, err := movementFromModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r MovementRepo) Save(ctx context.Context, mv travel.Movement) error {
	m, err := movementToModel(mv)
	if err != nil {
		return err
	}
	return dbFor(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movement_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "cancelled_at", "returns_at"}),
		}).
		Create(&m).Error
}

func movementToModel(mv travel.Movement) (model.Movement, error) {
	from, err := json.Marshal(mv.From)
	if err != nil {
		return model.Movement{}, fmt.Errorf("encode from endpoint: %w", err)
	}
	to, err := json.Marshal(mv.To)
	if err != nil {
		return model.Movement{}, fmt.Errorf("encode to endpoint: %w", err)
	}
	units, err := json.Marshal(mv.Units)
	if err != nil {
		return model.Movement{}, fmt.Errorf("encode units: %w", err)
	}
	return model.Movement{
		MovementID:     mv.ID,
		Kind:           string(mv.Kind),
		FromVillageID:  mv.From.VillageID,
		ToVillageID:    mv.To.VillageID,
		FromEndpoint:   from,
		ToEndpoint:     to,
		Units:          units,
		Speed:          mv.Speed,
		Distance:       mv.Distance,
		RealDistanceKm: mv.RealDistanceKm,
		TravelTicks:    mv.TravelTicks,
		DepartedAt:     mv.DepartedAt,
		ArrivesAt:      mv.ArrivesAt,
		Status:         string(mv.Status),
		CancelledAt:    optionalTime(mv.CancelledAt),
		ReturnsAt:      optionalTime(mv.ReturnsAt),
	}, nil
}

func movementFromModel(m model.Movement) (travel.Movement, error) {
	mv := travel.Movement{
		ID:             m.MovementID,
		Kind:           travel.MovementKind(m.Kind),
		Units:          map[string]int{},
		Speed:          m.Speed,
		Distance:       m.Distance,
		RealDistanceKm: m.RealDistanceKm,
		TravelTicks:    m.TravelTicks,
		DepartedAt:     m.DepartedAt,
		ArrivesAt:      m.ArrivesAt,
		Status:         travel.Status(m.Status),
	}
	if m.CancelledAt != nil {
		mv.CancelledAt = *m.CancelledAt
	}
	if m.ReturnsAt != nil {
		mv.ReturnsAt = *m.ReturnsAt
	}
	if err := decodeColumn("from_endpoint", m.FromEndpoint, &mv.From); err != nil {
		return travel.Movement{}, err
	}
	if err := decodeColumn("to_endpoint", m.ToEndpoint, &mv.To); err != nil {
		return travel.Movement{}, err
	}
	if err := decodeColumn("units", m.Units, &mv.Units); err != nil {
		return travel.Movement{}, err
	}
	return mv, nil
}
