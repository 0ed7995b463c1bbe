package timed

import (
	"errors"
	"sort"
	"time"
)

var ErrQueueBusy = errors.New("another job of this kind is already running")

// EnsureSlot fails when an active job of the same kind exists. Each village runs
// at most one construction, one research and one training batch at a time.
func EnsureSlot(jobs []Job, kind Kind) error {
	for _, j := range jobs {
		if j.Kind == kind && j.State == StateActive {
			return ErrQueueBusy
		}
	}
	return nil
}

// DueByCompletion returns active jobs finished at now, oldest completion first.
func DueByCompletion(jobs []Job, now time.Time) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Due(now) {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CompletedAt.Before(out[b].CompletedAt)
	})
	return out
}
