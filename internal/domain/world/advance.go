package world

import (
	"sort"
	"time"

	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
)

// Progression is the outcome of bringing a village up to date.
type Progression struct {
	Village   Village
	Completed []timed.Job
	Arrived   []travel.Movement
	Events    []DomainEvent
}

type milestone struct {
	at       time.Time
	job      *timed.Job
	movement *travel.Movement
}

// Advance replays everything that finished between the village's last
// evaluation and now, in completion order. Resources are accrued up to each
// milestone before its effect is applied, so a building that finished an hour
// ago has been producing at its new rate for that hour.
//
// Arriving attack movements land without touching the target's garrison; the
// caller sends the army home.
func Advance(v Village, jobs []timed.Job, incoming []travel.Movement, now time.Time) Progression {
	out := Progression{Village: v.Clone()}

	var steps []milestone
	for _, j := range timed.DueByCompletion(ownJobs(v.ID, jobs), now) {
		j := j
		steps = append(steps, milestone{at: j.CompletedAt, job: &j})
	}
	for _, m := range incoming {
		if m.To.VillageID != v.ID || !m.Arrived(now) {
			continue
		}
		m := m
		steps = append(steps, milestone{at: m.ArrivesAt, movement: &m})
	}
	sort.SliceStable(steps, func(i, k int) bool {
		if steps[i].at.Equal(steps[k].at) {
			return steps[i].job != nil && steps[k].job == nil
		}
		return steps[i].at.Before(steps[k].at)
	})

	for _, s := range steps {
		out.Village = out.Village.Settle(s.at)
		if s.job != nil {
			done, _ := s.job.Refresh(now)
			out.Village.ApplyCompletedJob(done)
			out.Completed = append(out.Completed, done)
			out.Events = append(out.Events, DomainEvent{
				Type:       EventJobCompleted,
				OccurredAt: done.CompletedAt,
				Payload: map[string]any{
					"job_id":   done.ID,
					"kind":     string(done.Kind),
					"subject":  done.Subject,
					"level":    done.Level,
					"quantity": done.Quantity,
				},
			})
			continue
		}
		landed, _ := s.movement.Refresh(now)
		if landed.Kind != travel.MovementAttack {
			out.Village.AddTroops(landed.Units)
		}
		out.Arrived = append(out.Arrived, landed)
		out.Events = append(out.Events, DomainEvent{
			Type:       EventMovementArrived,
			OccurredAt: landed.ArrivesAt,
			Payload: map[string]any{
				"movement_id":     landed.ID,
				"kind":            string(landed.Kind),
				"from_village_id": landed.From.VillageID,
				"units":           landed.Units,
			},
		})
	}

	out.Village = out.Village.Settle(now)
	return out
}

func ownJobs(villageID string, jobs []timed.Job) []timed.Job {
	out := make([]timed.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.VillageID == villageID {
			out = append(out, j)
		}
	}
	return out
}
