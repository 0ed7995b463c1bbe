package inmemory

import (
	"strconv"
	"sync"
)

type Snapshot struct {
	TickTotal        uint64            `json:"tick_total"`
	TickSuccess      uint64            `json:"tick_success"`
	TickConflict     uint64            `json:"tick_conflict"`
	TickFailure      uint64            `json:"tick_failure"`
	JobsCompleted    uint64            `json:"jobs_completed"`
	MovementsArrived uint64            `json:"movements_arrived"`
	RequestsByStatus map[string]uint64 `json:"requests_by_status"`
}

type Recorder struct {
	mu        sync.Mutex
	success   uint64
	conflict  uint64
	failure   uint64
	completed uint64
	arrived   uint64
	byStatus  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byStatus: map[string]uint64{},
	}
}

func (r *Recorder) RecordTick(completedJobs, arrivedMovements int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.completed += uint64(completedJobs)
	r.arrived += uint64(arrivedMovements)
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) RecordRequest(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byStatus[strconv.Itoa(status)]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TickSuccess:      r.success,
		TickConflict:     r.conflict,
		TickFailure:      r.failure,
		TickTotal:        r.success + r.conflict + r.failure,
		JobsCompleted:    r.completed,
		MovementsArrived: r.arrived,
		RequestsByStatus: make(map[string]uint64, len(r.byStatus)),
	}
	for k, v := range r.byStatus {
		out.RequestsByStatus[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
