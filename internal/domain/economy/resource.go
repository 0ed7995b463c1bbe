package economy

import (
	"errors"
	"math"
	"strings"
)

type ResourceType string

const (
	Wood ResourceType = "wood"
	Clay ResourceType = "clay"
	Iron ResourceType = "iron"
	Crop ResourceType = "crop"
)

var ErrInsufficientResources = errors.New("insufficient resources")

func AllResourceTypes() []ResourceType {
	return []ResourceType{Wood, Clay, Iron, Crop}
}

func ParseResourceType(raw string) (ResourceType, bool) {
	rt := ResourceType(strings.ToLower(strings.TrimSpace(raw)))
	switch rt {
	case Wood, Clay, Iron, Crop:
		return rt, true
	default:
		return "", false
	}
}

// Cost is an amount per resource type. Missing keys mean zero.
type Cost map[ResourceType]int

func (c Cost) Add(other Cost) Cost {
	out := Cost{}
	for rt, v := range c {
		out[rt] += v
	}
	for rt, v := range other {
		out[rt] += v
	}
	return out
}

func (c Cost) Scale(factor int) Cost {
	out := Cost{}
	for rt, v := range c {
		out[rt] = v * factor
	}
	return out
}

// ScaleFloat multiplies every amount and rounds to the nearest whole unit.
func (c Cost) ScaleFloat(factor float64) Cost {
	out := Cost{}
	for rt, v := range c {
		out[rt] = int(math.Round(float64(v) * factor))
	}
	return out
}

func (c Cost) IsZero() bool {
	for _, v := range c {
		if v != 0 {
			return false
		}
	}
	return true
}

// Stock is the last evaluated amount of one resource. Amount is only exact at the
// time it was evaluated; callers accrue it forward with At.
type Stock struct {
	Type        ResourceType `json:"type"`
	Amount      float64      `json:"amount"`
	Capacity    float64      `json:"capacity"`
	RatePerHour float64      `json:"rate_per_hour"`
}

func (s Stock) RatePerSecond() float64 {
	return s.RatePerHour / 3600
}

func (s Stock) After(elapsedSeconds float64) Stock {
	s.Amount = Accrue(s.Amount, s.Capacity, s.RatePerSecond(), elapsedSeconds)
	return s
}

func (s Stock) Percentage() float64 {
	return Percentage(s.Amount, s.Capacity)
}

func (s Stock) TimeToFull() (seconds float64, ok bool) {
	return TimeToFull(s.Amount, s.Capacity, s.RatePerSecond())
}

type Stocks map[ResourceType]Stock

func (s Stocks) Clone() Stocks {
	out := make(Stocks, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func (s Stocks) CanAfford(cost Cost) bool {
	for rt, qty := range cost {
		if qty <= 0 {
			continue
		}
		if s[rt].Amount < float64(qty) {
			return false
		}
	}
	return true
}

func (s Stocks) Spend(cost Cost) error {
	if !s.CanAfford(cost) {
		return ErrInsufficientResources
	}
	for rt, qty := range cost {
		if qty <= 0 {
			continue
		}
		st := s[rt]
		st.Amount -= float64(qty)
		s[rt] = st
	}
	return nil
}

// Refund returns resources to storage and reports what did not fit.
func (s Stocks) Refund(cost Cost) Cost {
	lost := Cost{}
	for rt, qty := range cost {
		if qty <= 0 {
			continue
		}
		st, ok := s[rt]
		if !ok {
			continue
		}
		room := math.Max(0, st.Capacity-st.Amount)
		if float64(qty) > room {
			lost[rt] = int(math.Ceil(float64(qty) - room))
		}
		st.Amount = math.Min(st.Capacity, st.Amount+float64(qty))
		s[rt] = st
	}
	return lost
}
