package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"villagetick/internal/app/ports"
	"villagetick/internal/app/tick"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/world"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid job request")

// Deps is shared by the queue use cases.
type Deps struct {
	TxManager ports.TxManager
	Villages  ports.VillageRepository
	Jobs      ports.JobRepository
	Movements ports.MovementRepository
	Events    ports.EventRepository
	Clock     world.Clock
	Now       func() time.Time
	NewID     func() string
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) newID() string {
	if d.NewID == nil {
		return uuid.NewString()
	}
	return d.NewID()
}

func (d Deps) settler() tick.Settler {
	return tick.Settler{
		Villages:  d.Villages,
		Jobs:      d.Jobs,
		Movements: d.Movements,
		Events:    d.Events,
		Clock:     d.Clock,
		NewID:     d.NewID,
	}
}

// settleForJob loads a job, brings its village up to date and returns both as
// they are after the settlement.
func (d Deps) settleForJob(ctx context.Context, jobID string, now time.Time) (timed.Job, world.Village, error) {
	job, err := d.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return timed.Job{}, world.Village{}, err
	}
	out, err := d.settler().Settle(ctx, job.VillageID, now)
	if err != nil {
		return timed.Job{}, world.Village{}, err
	}
	job, err = d.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return timed.Job{}, world.Village{}, err
	}
	return job, out.Village, nil
}

func (d Deps) commit(ctx context.Context, village world.Village, job timed.Job, evt world.DomainEvent) error {
	if err := d.Jobs.Save(ctx, job); err != nil {
		return err
	}
	expected := village.Version
	village.Version++
	if err := d.Villages.SaveWithVersion(ctx, village, expected); err != nil {
		return err
	}
	return d.Events.Append(ctx, village.ID, []world.DomainEvent{evt})
}

func jobEvent(eventType string, job timed.Job, at time.Time) world.DomainEvent {
	payload := map[string]any{
		"job_id":   job.ID,
		"kind":     string(job.Kind),
		"subject":  job.Subject,
		"level":    job.Level,
		"quantity": job.Quantity,
	}
	if !job.CompletedAt.IsZero() {
		payload["completed_at"] = job.CompletedAt
	}
	return world.DomainEvent{Type: eventType, OccurredAt: at, Payload: payload}
}

func formatCost(c economy.Cost) string {
	parts := make([]string, 0, len(c))
	for _, rt := range economy.AllResourceTypes() {
		if c[rt] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c[rt], rt))
		}
	}
	return strings.Join(parts, ", ")
}

func describe(job timed.Job) string {
	subject := strings.ReplaceAll(job.Subject, "_", " ")
	switch job.Kind {
	case timed.KindConstruction:
		return fmt.Sprintf("Upgrade of %s to level %d", subject, job.Level)
	case timed.KindResearch:
		return "Research of " + subject
	case timed.KindTraining:
		return fmt.Sprintf("Training of %d %s", job.Quantity, subject)
	}
	return "Job"
}
