package village

import (
	"context"
	"errors"
	"testing"
	"time"

	"villagetick/internal/adapter/repo/memory"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

func TestFoundUseCase_CreatesVillage(t *testing.T) {
	store := memory.NewStore()
	villages := memory.NewVillageRepo(store)
	events := memory.NewEventRepo(store)
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	uc := FoundUseCase{
		TxManager: memory.NewTxManager(store),
		Villages:  villages,
		Events:    events,
		Now:       func() time.Time { return now },
		NewID:     func() string { return "v-new" },
	}

	resp, err := uc.Execute(context.Background(), FoundRequest{Name: " Alpha ", OwnerID: "p1", X: -3, Y: 7, Geo: &travel.GeoPoint{Lat: 45, Lon: 9}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Notice.Message != "Village Alpha founded." {
		t.Fatalf("unexpected notice %+v", resp.Notice)
	}
	got, err := villages.GetByID(context.Background(), "v-new")
	if err != nil {
		t.Fatalf("village not stored: %v", err)
	}
	if got.Coordinate != (travel.Coordinate{X: -3, Y: 7}) || got.Version != 1 || !got.EvaluatedAt.Equal(now) {
		t.Fatalf("unexpected village %+v", got)
	}
	logged, _ := events.ListByVillageID(context.Background(), "v-new", 0)
	if len(logged) != 1 || logged[0].Type != world.EventVillageFounded {
		t.Fatalf("unexpected events %+v", logged)
	}

	if _, err := uc.Execute(context.Background(), FoundRequest{Name: "Beta", OwnerID: "p1"}); err == nil {
		t.Fatalf("duplicate id must conflict")
	}
}

func TestFoundUseCase_Validation(t *testing.T) {
	uc := FoundUseCase{}
	for _, req := range []FoundRequest{
		{OwnerID: "p1"},
		{Name: "Alpha"},
		{Name: "Alpha", OwnerID: "p1", Geo: &travel.GeoPoint{Lat: 91}},
	} {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%+v: expected ErrInvalidRequest, got %v", req, err)
		}
	}
}
