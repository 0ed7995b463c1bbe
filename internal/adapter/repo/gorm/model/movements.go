package model

import (
	"time"
)

const TableNameMovement = "movements"

// Movement mapped from table <movements>
type Movement struct {
	MovementID     string     `gorm:"column:movement_id;primaryKey" json:"movement_id"`
	Kind           string     `gorm:"column:kind;not null" json:"kind"`
	FromVillageID  string     `gorm:"column:from_village_id;not null" json:"from_village_id"`
	ToVillageID    string     `gorm:"column:to_village_id;not null" json:"to_village_id"`
	FromEndpoint   []byte     `gorm:"column:from_endpoint;not null" json:"from_endpoint"`
	ToEndpoint     []byte     `gorm:"column:to_endpoint;not null" json:"to_endpoint"`
	Units          []byte     `gorm:"column:units;not null" json:"units"`
	Speed          float64    `gorm:"column:speed;not null" json:"speed"`
	Distance       float64    `gorm:"column:distance;not null" json:"distance"`
	RealDistanceKm float64    `gorm:"column:real_distance_km;not null" json:"real_distance_km"`
	TravelTicks    int64      `gorm:"column:travel_ticks;not null" json:"travel_ticks"`
	DepartedAt     time.Time  `gorm:"column:departed_at;not null" json:"departed_at"`
	ArrivesAt      time.Time  `gorm:"column:arrives_at;not null" json:"arrives_at"`
	Status         string     `gorm:"column:status;not null" json:"status"`
	CancelledAt    *time.Time `gorm:"column:cancelled_at" json:"cancelled_at"`
	ReturnsAt      *time.Time `gorm:"column:returns_at" json:"returns_at"`
}

// TableName Movement's table name
func (*Movement) TableName() string {
	return TableNameMovement
}
