package model

import (
	"time"
)

const TableNameWorldClockState = "world_clock_state"

// WorldClockState mapped from table <world_clock_state>
type WorldClockState struct {
	StateKey  string    `gorm:"column:state_key;primaryKey" json:"state_key"`
	StartAt   time.Time `gorm:"column:start_at;not null" json:"start_at"`
	TickMs    int64     `gorm:"column:tick_ms;not null" json:"tick_ms"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

// TableName WorldClockState's table name
func (*WorldClockState) TableName() string {
	return TableNameWorldClockState
}
