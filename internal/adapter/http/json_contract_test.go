package httpadapter

import (
	"encoding/json"
	"testing"
	"time"

	"villagetick/internal/app/movement"
	"villagetick/internal/app/notice"
	"villagetick/internal/app/queue"
	"villagetick/internal/app/replay"
	"villagetick/internal/app/shared/view"
	"villagetick/internal/app/status"
	"villagetick/internal/app/tick"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/world"
)

func TestResponseJSONUsesSnakeCase(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	job := view.Job{ID: "j1", VillageID: "v1", Kind: timed.KindTraining, Subject: "legionnaire", Quantity: 3, State: timed.StateActive}
	event := world.DomainEvent{Type: world.EventJobStarted, OccurredAt: now, Payload: map[string]any{"ok": true}}

	cases := []struct {
		name    string
		payload any
		want    []string
		notWant []string
	}{
		{
			name:    "status",
			payload: status.Response{VillageID: "v1", Jobs: []view.Job{job}, EvaluatedAt: now},
			want:    []string{"village_id", "resources", "next_tick_in_seconds", "evaluated_at"},
			notWant: []string{"VillageID", "NextTickInSeconds"},
		},
		{
			name:    "job",
			payload: queue.Response{Notice: notice.Success("ok"), Job: job},
			want:    []string{"notice", "job"},
			notWant: []string{"Notice", "Job", "resources"},
		},
		{
			name:    "movement",
			payload: movement.Response{Notice: notice.Success("ok"), Movement: view.Movement{ID: "m1", DepartedAt: now, ArrivesAt: now}},
			want:    []string{"notice", "movement"},
			notWant: []string{"Movement", "return"},
		},
		{
			name:    "tick",
			payload: tick.Response{VillageID: "v1", Events: []world.DomainEvent{event}},
			want:    []string{"village_id", "completed_jobs", "arrived_movements", "events"},
			notWant: []string{"CompletedJobs", "ArrivedMovements"},
		},
		{
			name:    "replay",
			payload: replay.Response{VillageID: "v1", Events: []world.DomainEvent{event}},
			want:    []string{"village_id", "events"},
			notWant: []string{"Events"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.payload)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			for _, key := range tc.want {
				if _, ok := got[key]; !ok {
					t.Fatalf("expected key %q in %s", key, string(b))
				}
			}
			for _, key := range tc.notWant {
				if _, ok := got[key]; ok {
					t.Fatalf("unexpected key %q in %s", key, string(b))
				}
			}
			if tc.name == "job" {
				jobMap := asMap(got["job"])
				if _, ok := jobMap["units_finished"]; !ok {
					t.Fatalf("expected nested key job.units_finished in %s", string(b))
				}
				if _, ok := jobMap["UnitsFinished"]; ok {
					t.Fatalf("unexpected nested key job.UnitsFinished in %s", string(b))
				}
			}
		})
	}
}
