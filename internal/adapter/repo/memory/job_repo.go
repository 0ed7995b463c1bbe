package memory

import (
	"context"
	"sort"

	"villagetick/internal/app/ports"
	"villagetick/internal/domain/timed"
)

type JobRepo struct {
	store *Store
}

func NewJobRepo(store *Store) JobRepo {
	return JobRepo{store: store}
}

func (r JobRepo) GetByID(_ context.Context, jobID string) (timed.Job, error) {
	job, ok := r.store.jobs[jobID]
	if !ok {
		return timed.Job{}, ports.ErrJobNotFound
	}
	return cloneJob(job), nil
}

func (r JobRepo) ListByVillage(_ context.Context, villageID string, states ...timed.State) ([]timed.Job, error) {
	out := []timed.Job{}
	for _, job := range r.store.jobs {
		if job.VillageID != villageID || !hasState(states, job.State) {
			continue
		}
		out = append(out, cloneJob(job))
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].ID < out[k].ID
		}
		return out[i].CreatedAt.Before(out[k].CreatedAt)
	})
	return out, nil
}

func (r JobRepo) Save(_ context.Context, job timed.Job) error {
	r.store.jobs[job.ID] = cloneJob(job)
	return nil
}

func hasState(states []timed.State, s timed.State) bool {
	if len(states) == 0 {
		return true
	}
	for _, want := range states {
		if want == s {
			return true
		}
	}
	return false
}

func cloneJob(job timed.Job) timed.Job {
	job.Cost = job.Cost.Add(nil)
	return job
}
