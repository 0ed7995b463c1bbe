package model

import (
	"time"
)

const TableNameVillage = "villages"

// Village mapped from table <villages>
type Village struct {
	VillageID   string    `gorm:"column:village_id;primaryKey" json:"village_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	OwnerID     string    `gorm:"column:owner_id;not null" json:"owner_id"`
	X           int32     `gorm:"column:x;not null" json:"x"`
	Y           int32     `gorm:"column:y;not null" json:"y"`
	GeoLat      *float64  `gorm:"column:geo_lat" json:"geo_lat"`
	GeoLon      *float64  `gorm:"column:geo_lon" json:"geo_lon"`
	Stocks      []byte    `gorm:"column:stocks;not null;default:'{}'::jsonb" json:"stocks"`
	Buildings   []byte    `gorm:"column:buildings;not null;default:'{}'::jsonb" json:"buildings"`
	Troops      []byte    `gorm:"column:troops;not null;default:'{}'::jsonb" json:"troops"`
	Research    []byte    `gorm:"column:research;not null;default:'{}'::jsonb" json:"research"`
	EvaluatedAt time.Time `gorm:"column:evaluated_at;not null" json:"evaluated_at"`
	Version     int64     `gorm:"column:version;not null" json:"version"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

// TableName Village's table name
func (*Village) TableName() string {
	return TableNameVillage
}
