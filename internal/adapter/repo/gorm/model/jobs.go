package model

import (
	"time"
)

const TableNameJob = "jobs"

// Job mapped from table <jobs>
type Job struct {
	JobID          string     `gorm:"column:job_id;primaryKey" json:"job_id"`
	VillageID      string     `gorm:"column:village_id;not null" json:"village_id"`
	Kind           string     `gorm:"column:kind;not null" json:"kind"`
	Subject        string     `gorm:"column:subject;not null" json:"subject"`
	Level          int32      `gorm:"column:level;not null" json:"level"`
	Quantity       int32      `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Cost           []byte     `gorm:"column:cost;not null;default:'{}'::jsonb" json:"cost"`
	UnitDurationMs int64      `gorm:"column:unit_duration_ms;not null" json:"unit_duration_ms"`
	State          string     `gorm:"column:state;not null" json:"state"`
	StartedAt      *time.Time `gorm:"column:started_at" json:"started_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null" json:"created_at"`
}

// TableName Job's table name
func (*Job) TableName() string {
	return TableNameJob
}
