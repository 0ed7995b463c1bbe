package world

import (
	"errors"
	"strings"
	"time"

	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNotEnoughTroops = errors.New("not enough troops in village")
	ErrUnknownJobKind  = errors.New("unknown job kind")
)

const StartingResources = 750

type Village struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	OwnerID     string                       `json:"owner_id"`
	Coordinate  travel.Coordinate            `json:"coordinate"`
	Geo         *travel.GeoPoint             `json:"geo,omitempty"`
	Stocks      economy.Stocks               `json:"stocks"`
	Buildings   map[catalog.BuildingType]int `json:"buildings"`
	Troops      map[string]int               `json:"troops"`
	Research    map[string]bool              `json:"research"`
	EvaluatedAt time.Time                    `json:"evaluated_at"`
	Version     int64                        `json:"version"`
}

func NewVillage(id, name, ownerID string, at travel.Coordinate, geo *travel.GeoPoint, now time.Time) Village {
	v := Village{
		ID:          id,
		Name:        name,
		OwnerID:     ownerID,
		Coordinate:  at,
		Geo:         geo,
		Stocks:      economy.Stocks{},
		Buildings:   map[catalog.BuildingType]int{},
		Troops:      map[string]int{},
		Research:    map[string]bool{},
		EvaluatedAt: now,
		Version:     1,
	}
	for _, rt := range economy.AllResourceTypes() {
		v.Stocks[rt] = economy.Stock{Type: rt, Amount: StartingResources}
	}
	v.ApplyBuildings()
	return v
}

func (v Village) Clone() Village {
	out := v
	out.Stocks = v.Stocks.Clone()
	out.Buildings = make(map[catalog.BuildingType]int, len(v.Buildings))
	for k, n := range v.Buildings {
		out.Buildings[k] = n
	}
	out.Troops = copyCounts(v.Troops)
	out.Research = make(map[string]bool, len(v.Research))
	for k, ok := range v.Research {
		out.Research[k] = ok
	}
	if v.Geo != nil {
		g := *v.Geo
		out.Geo = &g
	}
	return out
}

// Settle accrues every stock up to now. Evaluation never moves backwards.
func (v Village) Settle(now time.Time) Village {
	out := v.Clone()
	if !now.After(v.EvaluatedAt) {
		return out
	}
	elapsed := now.Sub(v.EvaluatedAt).Seconds()
	for rt, st := range out.Stocks {
		out.Stocks[rt] = st.After(elapsed)
	}
	out.EvaluatedAt = now
	return out
}

// ApplyBuildings recomputes production and storage from building levels and
// the crop upkeep of the garrison.
func (v *Village) ApplyBuildings() {
	if v.Stocks == nil {
		v.Stocks = economy.Stocks{}
	}
	eco := catalog.Economy(v.Buildings, catalog.CropUpkeep(v.Troops))
	for rt, e := range eco {
		st := v.Stocks[rt]
		st.Type = rt
		st.RatePerHour = e.RatePerHour
		st.Capacity = e.Capacity
		if st.Amount > st.Capacity {
			st.Amount = st.Capacity
		}
		v.Stocks[rt] = st
	}
}

func (v Village) Endpoint() travel.Endpoint {
	return travel.Endpoint{VillageID: v.ID, Coordinate: v.Coordinate, Geo: v.Geo}
}

type JobPlan struct {
	Kind         timed.Kind
	Subject      string
	Level        int
	Quantity     int
	Cost         economy.Cost
	UnitDuration time.Duration
}

func (p JobPlan) Job(id string, createdAt time.Time) timed.Job {
	return timed.Job{
		ID:           id,
		Kind:         p.Kind,
		Subject:      p.Subject,
		Level:        p.Level,
		Quantity:     p.Quantity,
		Cost:         p.Cost,
		UnitDuration: p.UnitDuration,
		State:        timed.StatePending,
		CreatedAt:    createdAt,
	}
}

func (v Village) PlanJob(kind timed.Kind, subject string, quantity int) (JobPlan, error) {
	subject = strings.ToLower(strings.TrimSpace(subject))
	switch kind {
	case timed.KindConstruction:
		def, err := catalog.Building(subject)
		if err != nil {
			return JobPlan{}, err
		}
		level := v.Buildings[def.Type] + 1
		cost, d, err := def.Upgrade(level)
		if err != nil {
			return JobPlan{}, err
		}
		return JobPlan{Kind: kind, Subject: string(def.Type), Level: level, Quantity: 1, Cost: cost, UnitDuration: d}, nil
	case timed.KindResearch:
		def, err := catalog.Unit(subject)
		if err != nil {
			return JobPlan{}, err
		}
		if def.Research == nil || v.Research[def.Name] {
			return JobPlan{}, catalog.ErrAlreadyResearched
		}
		if v.Buildings[def.Research.Requires] < 1 {
			return JobPlan{}, catalog.ErrBuildingRequired
		}
		return JobPlan{Kind: kind, Subject: def.Name, Quantity: 1, Cost: def.Research.Cost, UnitDuration: def.Research.Duration}, nil
	case timed.KindTraining:
		if quantity < 1 {
			return JobPlan{}, ErrInvalidQuantity
		}
		def, err := catalog.Unit(subject)
		if err != nil {
			return JobPlan{}, err
		}
		if def.Research != nil && !v.Research[def.Name] {
			return JobPlan{}, catalog.ErrResearchRequired
		}
		if v.Buildings[def.TrainedIn] < 1 {
			return JobPlan{}, catalog.ErrBuildingRequired
		}
		return JobPlan{Kind: kind, Subject: def.Name, Quantity: quantity, Cost: def.Cost.Scale(quantity), UnitDuration: def.TrainDuration}, nil
	}
	return JobPlan{}, ErrUnknownJobKind
}

// ApplyCompletedJob applies the effect of a finished job. The village should be
// settled up to the job's completion time first.
func (v *Village) ApplyCompletedJob(job timed.Job) {
	switch job.Kind {
	case timed.KindConstruction:
		bt := catalog.BuildingType(job.Subject)
		if v.Buildings == nil {
			v.Buildings = map[catalog.BuildingType]int{}
		}
		if job.Level > v.Buildings[bt] {
			v.Buildings[bt] = job.Level
		}
	case timed.KindResearch:
		if v.Research == nil {
			v.Research = map[string]bool{}
		}
		v.Research[job.Subject] = true
	case timed.KindTraining:
		v.AddTroops(map[string]int{job.Subject: job.Quantity})
		return
	}
	v.ApplyBuildings()
}

func (v *Village) AddTroops(units map[string]int) {
	if v.Troops == nil {
		v.Troops = map[string]int{}
	}
	for name, n := range units {
		if n > 0 {
			v.Troops[name] += n
		}
	}
	v.ApplyBuildings()
}

func (v *Village) RemoveTroops(units map[string]int) error {
	for name, n := range units {
		if n < 0 || v.Troops[name] < n {
			return ErrNotEnoughTroops
		}
	}
	for name, n := range units {
		if n == 0 {
			continue
		}
		v.Troops[name] -= n
		if v.Troops[name] == 0 {
			delete(v.Troops, name)
		}
	}
	v.ApplyBuildings()
	return nil
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, n := range in {
		out[k] = n
	}
	return out
}
