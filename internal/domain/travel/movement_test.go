package travel

import (
	"errors"
	"testing"
	"time"
)

var departed = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func testMovement(t *testing.T) Movement {
	t.Helper()
	m, err := NewMovement(MovementParams{
		ID:         "m1",
		Kind:       MovementReinforce,
		From:       Endpoint{VillageID: "a", Coordinate: Coordinate{X: 0, Y: 0}, Geo: &GeoPoint{Lat: 48.8566, Lon: 2.3522}},
		To:         Endpoint{VillageID: "b", Coordinate: Coordinate{X: 30, Y: 40}, Geo: &GeoPoint{Lat: 51.5074, Lon: -0.1278}},
		Units:      map[string]int{"legionnaire": 10, "equites": 2, "scout": 0},
		UnitSpeeds: map[string]float64{"legionnaire": 6, "equites": 14, "scout": 16},
		DepartedAt: departed,
		Tick:       time.Second,
	})
	if err != nil {
		t.Fatalf("NewMovement error: %v", err)
	}
	return m
}

func TestNewMovement_ComputesDistanceOnce(t *testing.T) {
	m := testMovement(t)
	if m.Distance != 50 {
		t.Fatalf("distance=%v want 50", m.Distance)
	}
	if m.Speed != 6 || m.TravelTicks != 9 {
		t.Fatalf("speed/ticks=%v/%d want 6/9", m.Speed, m.TravelTicks)
	}
	if !m.ArrivesAt.Equal(departed.Add(9 * time.Second)) {
		t.Fatalf("arrives at %s", m.ArrivesAt)
	}
	if _, ok := m.Units["scout"]; ok {
		t.Fatalf("zero-count units must be dropped")
	}
	if m.RealDistanceKm <= 0 {
		t.Fatalf("expected real distance when both geo points are set")
	}
	if m.Status != StatusTravelling {
		t.Fatalf("status=%s", m.Status)
	}
}

func TestNewMovement_Rejections(t *testing.T) {
	_, err := NewMovement(MovementParams{
		From:  Endpoint{VillageID: "a"},
		To:    Endpoint{VillageID: "a"},
		Units: map[string]int{"legionnaire": 1},
	})
	if !errors.Is(err, ErrSameVillage) {
		t.Fatalf("expected ErrSameVillage, got %v", err)
	}
	_, err = NewMovement(MovementParams{
		From:  Endpoint{VillageID: "a"},
		To:    Endpoint{VillageID: "b"},
		Units: map[string]int{"legionnaire": 0},
	})
	if !errors.Is(err, ErrNoUnits) {
		t.Fatalf("expected ErrNoUnits, got %v", err)
	}
	_, err = NewMovement(MovementParams{
		From:  Endpoint{VillageID: "a"},
		To:    Endpoint{VillageID: "b"},
		Units: map[string]int{"dragon": 1},
	})
	if !errors.Is(err, ErrInvalidSpeed) {
		t.Fatalf("expected ErrInvalidSpeed for unknown unit, got %v", err)
	}
}

func TestMovementProgressAndArrival(t *testing.T) {
	m := testMovement(t)
	if got := m.Progress(departed.Add(3 * time.Second)); got < 33 || got > 34 {
		t.Fatalf("progress=%v want ~33.3", got)
	}
	if got := m.Remaining(departed.Add(3 * time.Second)); got != 6*time.Second {
		t.Fatalf("remaining=%s want 6s", got)
	}
	if _, ok := m.Refresh(departed.Add(8 * time.Second)); ok {
		t.Fatalf("must not arrive early")
	}
	done, ok := m.Refresh(departed.Add(9 * time.Second))
	if !ok || done.Status != StatusCompleted || done.Progress(departed) != 100 {
		t.Fatalf("expected completed movement, got %+v", done)
	}
}

func TestMovementCancelAndRecall(t *testing.T) {
	m := testMovement(t)
	cancelled, err := m.Cancel(departed.Add(4 * time.Second))
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if cancelled.Status != StatusCancelled || !cancelled.ReturnsAt.Equal(departed.Add(8*time.Second)) {
		t.Fatalf("unexpected cancelled movement: %+v", cancelled)
	}
	if _, err := cancelled.Cancel(departed.Add(5 * time.Second)); !errors.Is(err, ErrNotTravelling) {
		t.Fatalf("double cancel: expected ErrNotTravelling, got %v", err)
	}

	back, err := cancelled.Recall("m2")
	if err != nil {
		t.Fatalf("Recall error: %v", err)
	}
	if back.Kind != MovementReturn || back.To.VillageID != "a" || back.From.VillageID != "b" {
		t.Fatalf("unexpected recall: %+v", back)
	}
	if !back.ArrivesAt.Equal(departed.Add(8*time.Second)) || back.Units["legionnaire"] != 10 {
		t.Fatalf("unexpected recall timing/units: %+v", back)
	}
}

func TestMovementCancelAfterArrivalRejected(t *testing.T) {
	m := testMovement(t)
	if _, err := m.Cancel(departed.Add(time.Minute)); !errors.Is(err, ErrNotTravelling) {
		t.Fatalf("expected ErrNotTravelling, got %v", err)
	}
}

func TestReturnHomeReusesTravelTicks(t *testing.T) {
	m := testMovement(t)
	arrived := departed.Add(9 * time.Second)
	back := m.ReturnHome("m3", arrived, 2*time.Second)
	if !back.ArrivesAt.Equal(arrived.Add(18 * time.Second)) {
		t.Fatalf("return arrives at %s", back.ArrivesAt)
	}
	m.Units["legionnaire"] = 1
	if back.Units["legionnaire"] != 10 {
		t.Fatalf("return movement must copy units")
	}
}
