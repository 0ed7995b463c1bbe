package travel

import (
	"errors"
	"strings"
	"time"

	"villagetick/internal/domain/economy"
)

type MovementKind string

const (
	MovementReinforce MovementKind = "reinforce"
	MovementAttack    MovementKind = "attack"
	MovementReturn    MovementKind = "return"
)

func ParseMovementKind(raw string) (MovementKind, bool) {
	k := MovementKind(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case MovementReinforce, MovementAttack, MovementReturn:
		return k, true
	}
	return "", false
}

type Status string

const (
	StatusTravelling Status = "travelling"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrNotTravelling = errors.New("movement is not travelling")
	ErrSameVillage   = errors.New("origin and target village are the same")
)

type Endpoint struct {
	VillageID  string     `json:"village_id"`
	Coordinate Coordinate `json:"coordinate"`
	Geo        *GeoPoint  `json:"geo,omitempty"`
}

type Movement struct {
	ID             string         `json:"id"`
	Kind           MovementKind   `json:"kind"`
	From           Endpoint       `json:"from"`
	To             Endpoint       `json:"to"`
	Units          map[string]int `json:"units"`
	Speed          float64        `json:"speed"`
	Distance       float64        `json:"distance"`
	RealDistanceKm float64        `json:"real_distance_km,omitempty"`
	TravelTicks    int64          `json:"travel_ticks"`
	DepartedAt     time.Time      `json:"departed_at"`
	ArrivesAt      time.Time      `json:"arrives_at"`
	Status         Status         `json:"status"`
	CancelledAt    time.Time      `json:"cancelled_at,omitempty"`
	ReturnsAt      time.Time      `json:"returns_at,omitempty"`
}

type MovementParams struct {
	ID         string
	Kind       MovementKind
	From       Endpoint
	To         Endpoint
	Units      map[string]int
	UnitSpeeds map[string]float64
	DepartedAt time.Time
	Tick       time.Duration
}

// NewMovement computes distance and travel time once; both stay fixed for the
// lifetime of the movement.
func NewMovement(p MovementParams) (Movement, error) {
	if p.From.VillageID != "" && p.From.VillageID == p.To.VillageID {
		return Movement{}, ErrSameVillage
	}
	units := map[string]int{}
	speeds := make([]float64, 0, len(p.Units))
	for name, count := range p.Units {
		if count <= 0 {
			continue
		}
		speed, ok := p.UnitSpeeds[name]
		if !ok {
			return Movement{}, ErrInvalidSpeed
		}
		units[name] = count
		speeds = append(speeds, speed)
	}
	distance := Euclidean(p.From.Coordinate, p.To.Coordinate)
	ticks, err := TravelTicks(distance, speeds)
	if err != nil {
		return Movement{}, err
	}
	slowest, _ := SlowestSpeed(speeds)
	tick := p.Tick
	if tick <= 0 {
		tick = time.Second
	}

	m := Movement{
		ID:          p.ID,
		Kind:        p.Kind,
		From:        p.From,
		To:          p.To,
		Units:       units,
		Speed:       slowest,
		Distance:    distance,
		TravelTicks: ticks,
		DepartedAt:  p.DepartedAt,
		ArrivesAt:   p.DepartedAt.Add(time.Duration(ticks) * tick),
		Status:      StatusTravelling,
	}
	if p.From.Geo != nil && p.To.Geo != nil {
		m.RealDistanceKm = Haversine(*p.From.Geo, *p.To.Geo)
	}
	return m, nil
}

func (m Movement) Progress(now time.Time) float64 {
	switch m.Status {
	case StatusCompleted:
		return 100
	case StatusCancelled:
		return 0
	}
	total := m.ArrivesAt.Sub(m.DepartedAt)
	if total <= 0 {
		return 100
	}
	return economy.Progress(float64(now.Sub(m.DepartedAt)), float64(total))
}

func (m Movement) Remaining(now time.Time) time.Duration {
	var until time.Time
	switch m.Status {
	case StatusTravelling:
		until = m.ArrivesAt
	case StatusCancelled:
		until = m.ReturnsAt
	default:
		return 0
	}
	if d := until.Sub(now); d > 0 {
		return d
	}
	return 0
}

func (m Movement) Arrived(now time.Time) bool {
	return m.Status == StatusTravelling && !now.Before(m.ArrivesAt)
}

func (m Movement) Refresh(now time.Time) (Movement, bool) {
	if !m.Arrived(now) {
		return m, false
	}
	m.Status = StatusCompleted
	return m, true
}

// Cancel recalls a travelling movement. The troops walk back for as long as
// they were already under way.
func (m Movement) Cancel(now time.Time) (Movement, error) {
	if m.Status != StatusTravelling || !now.Before(m.ArrivesAt) {
		return m, ErrNotTravelling
	}
	elapsed := now.Sub(m.DepartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	m.Status = StatusCancelled
	m.CancelledAt = now
	m.ReturnsAt = now.Add(elapsed)
	return m, nil
}

// ReturnHome builds the way back for troops that reached their target.
func (m Movement) ReturnHome(id string, now time.Time, tick time.Duration) Movement {
	if tick <= 0 {
		tick = time.Second
	}
	return m.reversed(id, now, now.Add(time.Duration(m.TravelTicks)*tick))
}

// Recall builds the way back for a cancelled movement, arriving at ReturnsAt.
func (m Movement) Recall(id string) (Movement, error) {
	if m.Status != StatusCancelled {
		return Movement{}, ErrNotTravelling
	}
	return m.reversed(id, m.CancelledAt, m.ReturnsAt), nil
}

func (m Movement) reversed(id string, departed, arrives time.Time) Movement {
	back := m
	back.ID = id
	back.Kind = MovementReturn
	back.From, back.To = m.To, m.From
	back.Units = make(map[string]int, len(m.Units))
	for k, v := range m.Units {
		back.Units[k] = v
	}
	back.DepartedAt = departed
	back.ArrivesAt = arrives
	back.Status = StatusTravelling
	back.CancelledAt = time.Time{}
	back.ReturnsAt = time.Time{}
	return back
}
