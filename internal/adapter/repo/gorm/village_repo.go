package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"villagetick/internal/adapter/repo/gorm/model"
	"villagetick/internal/app/ports"
	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"

	"gorm.io/gorm"
)

type VillageRepo struct {
	db *gorm.DB
}

func NewVillageRepo(db *gorm.DB) VillageRepo {
	return VillageRepo{db: db}
}

func (r VillageRepo) GetByID(ctx context.Context, villageID string) (world.Village, error) {
	var m model.Village
	if err := dbFor(ctx, r.db).Where("village_id = ?", villageID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return world.Village{}, ports.ErrVillageNotFound
		}
		return world.Village{}, err
	}
	return villageFromModel(m)
}

func (r VillageRepo) SaveWithVersion(ctx context.Context, v world.Village, expectedVersion int64) error {
	db := dbFor(ctx, r.db)
	m, err := villageToModel(v)
	if err != nil {
		return err
	}
	if expectedVersion == 0 {
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"name":         m.Name,
		"owner_id":     m.OwnerID,
		"x":            m.X,
		"y":            m.Y,
		"geo_lat":      m.GeoLat,
		"geo_lon":      m.GeoLon,
		"stocks":       m.Stocks,
		"buildings":    m.Buildings,
		"troops":       m.Troops,
		"research":     m.Research,
		"evaluated_at": m.EvaluatedAt,
		"version":      m.Version,
		"updated_at":   time.Now(),
	}

	res := db.Model(&model.Village{}).
		Where("village_id = ? AND version = ?", v.ID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func villageToModel(v world.Village) (model.Village, error) {
	stocks, err := json.Marshal(v.Stocks)
	if err != nil {
		return model.Village{}, fmt.Errorf("encode stocks: %w", err)
	}
	buildings, err := json.Marshal(v.Buildings)
	if err != nil {
		return model.Village{}, fmt.Errorf("encode buildings: %w", err)
	}
	troops, err := json.Marshal(v.Troops)
	if err != nil {
		return model.Village{}, fmt.Errorf("encode troops: %w", err)
	}
	research, err := json.Marshal(v.Research)
	if err != nil {
		return model.Village{}, fmt.Errorf("encode research: %w", err)
	}
	m := model.Village{
		VillageID:   v.ID,
		Name:        v.Name,
		OwnerID:     v.OwnerID,
		X:           int32(v.Coordinate.X),
		Y:           int32(v.Coordinate.Y),
		Stocks:      stocks,
		Buildings:   buildings,
		Troops:      troops,
		Research:    research,
		EvaluatedAt: v.EvaluatedAt,
		Version:     v.Version,
	}
	if v.Geo != nil {
		lat, lon := v.Geo.Lat, v.Geo.Lon
		m.GeoLat, m.GeoLon = &lat, &lon
	}
	return m, nil
}

func villageFromModel(m model.Village) (world.Village, error) {
	v := world.Village{
		ID:          m.VillageID,
		Name:        m.Name,
		OwnerID:     m.OwnerID,
		Coordinate:  travel.Coordinate{X: int(m.X), Y: int(m.Y)},
		Stocks:      economy.Stocks{},
		Buildings:   map[catalog.BuildingType]int{},
		Troops:      map[string]int{},
		Research:    map[string]bool{},
		EvaluatedAt: m.EvaluatedAt,
		Version:     m.Version,
	}
	if m.GeoLat != nil && m.GeoLon != nil {
		v.Geo = &travel.GeoPoint{Lat: *m.GeoLat, Lon: *m.GeoLon}
	}
	if err := decodeColumn("stocks", m.Stocks, &v.Stocks); err != nil {
		return world.Village{}, err
	}
	if err := decodeColumn("buildings", m.Buildings, &v.Buildings); err != nil {
		return world.Village{}, err
	}
	if err := decodeColumn("troops", m.Troops, &v.Troops); err != nil {
		return world.Village{}, err
	}
	if err := decodeColumn("research", m.Research, &v.Research); err != nil {
		return world.Village{}, err
	}
	return v, nil
}

func decodeColumn(name string, raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
