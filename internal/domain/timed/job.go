package timed

import (
	"errors"
	"time"

	"villagetick/internal/domain/economy"
)

type Kind string

const (
	KindConstruction Kind = "construction"
	KindResearch     Kind = "research"
	KindTraining     Kind = "training"
)

func (k Kind) Valid() bool {
	switch k {
	case KindConstruction, KindResearch, KindTraining:
		return true
	}
	return false
}

type State string

const (
	StatePending   State = "pending"
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

var (
	ErrInvalidTransition = errors.New("invalid job state transition")
	ErrInvalidDuration   = errors.New("invalid job duration")
)

// Job is a construction, research or training order. Training orders cover
// Quantity units, each taking UnitDuration.
type Job struct {
	ID           string        `json:"id"`
	VillageID    string        `json:"village_id"`
	Kind         Kind          `json:"kind"`
	Subject      string        `json:"subject"`
	Level        int           `json:"level,omitempty"`
	Quantity     int           `json:"quantity"`
	Cost         economy.Cost  `json:"cost"`
	UnitDuration time.Duration `json:"unit_duration"`
	State        State         `json:"state"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  time.Time     `json:"completed_at"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (j Job) quantity() int {
	if j.Quantity < 1 {
		return 1
	}
	return j.Quantity
}

func (j Job) Duration() time.Duration {
	return j.UnitDuration * time.Duration(j.quantity())
}

func (j Job) Start(now time.Time) (Job, error) {
	if j.State != StatePending {
		return j, ErrInvalidTransition
	}
	if j.UnitDuration <= 0 {
		return j, ErrInvalidDuration
	}
	j.State = StateActive
	j.StartedAt = now
	j.CompletedAt = now.Add(j.Duration())
	return j, nil
}

func (j Job) Elapsed(now time.Time) time.Duration {
	switch j.State {
	case StateCompleted:
		return j.CompletedAt.Sub(j.StartedAt)
	case StateActive:
		elapsed := now.Sub(j.StartedAt)
		if elapsed < 0 {
			return 0
		}
		if total := j.CompletedAt.Sub(j.StartedAt); elapsed > total {
			return total
		}
		return elapsed
	}
	return 0
}

func (j Job) Remaining(now time.Time) time.Duration {
	if j.State != StateActive {
		return 0
	}
	remaining := j.CompletedAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (j Job) Progress(now time.Time) float64 {
	switch j.State {
	case StateCompleted:
		return 100
	case StateActive:
		total := j.CompletedAt.Sub(j.StartedAt)
		if total <= 0 {
			return 100
		}
		return economy.Progress(float64(now.Sub(j.StartedAt)), float64(total))
	}
	return 0
}

func (j Job) Due(now time.Time) bool {
	return j.State == StateActive && !now.Before(j.CompletedAt)
}

// Refresh completes the job if its completion time has passed.
func (j Job) Refresh(now time.Time) (Job, bool) {
	if !j.Due(now) {
		return j, false
	}
	j.State = StateCompleted
	return j, true
}

// Complete finishes an active job immediately, e.g. when an instant-finish is
// granted. CompletedAt is moved to now if that is earlier.
func (j Job) Complete(now time.Time) (Job, error) {
	if j.State != StateActive {
		return j, ErrInvalidTransition
	}
	if now.Before(j.CompletedAt) {
		if now.Before(j.StartedAt) {
			now = j.StartedAt
		}
		j.CompletedAt = now
	}
	j.State = StateCompleted
	return j, nil
}

// Cancel puts an active job back to pending. The caller refunds Cost in full.
func (j Job) Cancel() (Job, error) {
	if j.State != StateActive {
		return j, ErrInvalidTransition
	}
	j.State = StatePending
	j.StartedAt = time.Time{}
	j.CompletedAt = time.Time{}
	return j, nil
}

// Abandon drops a pending job for good.
func (j Job) Abandon() (Job, error) {
	if j.State != StatePending {
		return j, ErrInvalidTransition
	}
	j.State = StateCancelled
	return j, nil
}

func (j Job) UnitsFinished(now time.Time) int {
	if j.State == StateCompleted {
		return j.quantity()
	}
	if j.State != StateActive || j.UnitDuration <= 0 {
		return 0
	}
	n := int(j.Elapsed(now) / j.UnitDuration)
	if n > j.quantity() {
		n = j.quantity()
	}
	return n
}
