package world

import (
	"testing"
	"time"

	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
)

func startedJob(t *testing.T, v Village, kind timed.Kind, subject string, qty int, at time.Time) timed.Job {
	t.Helper()
	plan, err := v.PlanJob(kind, subject, qty)
	if err != nil {
		t.Fatalf("PlanJob(%s,%s) error: %v", kind, subject, err)
	}
	job := plan.Job("job-"+subject, at)
	job.VillageID = v.ID
	job, err = job.Start(at)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	return job
}

func TestAdvanceAppliesJobsInCompletionOrder(t *testing.T) {
	v := newTestVillage()
	v.Stocks[economy.Wood] = economy.Stock{Type: economy.Wood, Amount: 0, Capacity: 800, RatePerHour: 3}
	job := startedJob(t, v, timed.KindConstruction, "woodcutter", 1, founded)

	now := founded.Add(job.Duration() + time.Hour)
	p := Advance(v, []timed.Job{job}, nil, now)

	if len(p.Completed) != 1 || p.Completed[0].State != timed.StateCompleted {
		t.Fatalf("expected one completed job, got %+v", p.Completed)
	}
	if p.Village.Buildings[catalog.Woodcutter] != 1 {
		t.Fatalf("woodcutter level=%d want 1", p.Village.Buildings[catalog.Woodcutter])
	}
	// 3/h until the upgrade finished, then 7/h for the last hour.
	want := 3*job.Duration().Hours() + 7
	if got := p.Village.Stocks[economy.Wood].Amount; got < want-1e-6 || got > want+1e-6 {
		t.Fatalf("wood=%v want %v", got, want)
	}
	if !p.Village.EvaluatedAt.Equal(now) {
		t.Fatalf("village must be evaluated at now, got %s", p.Village.EvaluatedAt)
	}
	if len(p.Events) != 1 || p.Events[0].Type != EventJobCompleted {
		t.Fatalf("unexpected events %+v", p.Events)
	}
}

func TestAdvanceSkipsUnfinishedAndForeignWork(t *testing.T) {
	v := newTestVillage()
	job := startedJob(t, v, timed.KindConstruction, "clay_pit", 1, founded)
	foreign := job
	foreign.ID = "job-foreign"
	foreign.VillageID = "v2"

	p := Advance(v, []timed.Job{job, foreign}, nil, founded.Add(time.Second))
	if len(p.Completed) != 0 || len(p.Events) != 0 {
		t.Fatalf("nothing should finish yet: %+v", p)
	}
}

func TestAdvanceLandsMovements(t *testing.T) {
	v := newTestVillage()
	home := travel.Endpoint{VillageID: "v2", Coordinate: travel.Coordinate{X: 103, Y: 104}}
	speeds := map[string]float64{"legionnaire": 6}
	reinforce, err := travel.NewMovement(travel.MovementParams{
		ID: "m1", Kind: travel.MovementReinforce, From: home, To: v.Endpoint(),
		Units: map[string]int{"legionnaire": 4}, UnitSpeeds: speeds, DepartedAt: founded,
	})
	if err != nil {
		t.Fatalf("NewMovement error: %v", err)
	}
	attack := reinforce
	attack.ID = "m2"
	attack.Kind = travel.MovementAttack
	outgoing := reinforce
	outgoing.ID = "m3"
	outgoing.From, outgoing.To = outgoing.To, outgoing.From

	p := Advance(v, nil, []travel.Movement{reinforce, attack, outgoing}, founded.Add(time.Minute))
	if len(p.Arrived) != 2 {
		t.Fatalf("expected 2 arrivals, got %+v", p.Arrived)
	}
	if p.Village.Troops["legionnaire"] != 4 {
		t.Fatalf("only the reinforcement joins the garrison, troops=%v", p.Village.Troops)
	}
	for _, m := range p.Arrived {
		if m.Status != travel.StatusCompleted {
			t.Fatalf("arrived movement %s status=%s", m.ID, m.Status)
		}
	}
}
