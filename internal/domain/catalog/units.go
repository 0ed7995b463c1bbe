package catalog

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"villagetick/internal/domain/economy"
)

var (
	ErrResearchRequired  = errors.New("unit requires research")
	ErrAlreadyResearched = errors.New("unit already researched")
	ErrBuildingRequired  = errors.New("required building missing")
	ErrBadSelection      = errors.New("expected name:count pairs separated by commas")
)

// UnitDef speeds are fields per tick.
type UnitDef struct {
	Name          string
	Speed         float64
	TrainDuration time.Duration
	Cost          economy.Cost
	CropUpkeep    float64
	Research      *ResearchDef
	TrainedIn     BuildingType
}

type ResearchDef struct {
	Cost     economy.Cost
	Duration time.Duration
	Requires BuildingType
}

var unitDefs = map[string]UnitDef{
	"legionnaire": {
		Name:          "legionnaire",
		Speed:         6,
		TrainDuration: 1600 * time.Second,
		Cost:          economy.Cost{economy.Wood: 120, economy.Clay: 100, economy.Iron: 150, economy.Crop: 30},
		CropUpkeep:    1,
		TrainedIn:     Barracks,
	},
	"praetorian": {
		Name:          "praetorian",
		Speed:         5,
		TrainDuration: 1760 * time.Second,
		Cost:          economy.Cost{economy.Wood: 100, economy.Clay: 130, economy.Iron: 160, economy.Crop: 70},
		CropUpkeep:    1,
		TrainedIn:     Barracks,
		Research:      &ResearchDef{Cost: economy.Cost{economy.Wood: 700, economy.Clay: 620, economy.Iron: 1480, economy.Crop: 580}, Duration: 7080 * time.Second, Requires: Academy},
	},
	"scout": {
		Name:          "scout",
		Speed:         16,
		TrainDuration: 1120 * time.Second,
		Cost:          economy.Cost{economy.Wood: 140, economy.Clay: 160, economy.Iron: 20, economy.Crop: 40},
		CropUpkeep:    2,
		TrainedIn:     Barracks,
		Research:      &ResearchDef{Cost: economy.Cost{economy.Wood: 940, economy.Clay: 740, economy.Iron: 360, economy.Crop: 400}, Duration: 5880 * time.Second, Requires: Academy},
	},
	"equites": {
		Name:          "equites",
		Speed:         14,
		TrainDuration: 2640 * time.Second,
		Cost:          economy.Cost{economy.Wood: 550, economy.Clay: 440, economy.Iron: 320, economy.Crop: 100},
		CropUpkeep:    3,
		TrainedIn:     Barracks,
		Research:      &ResearchDef{Cost: economy.Cost{economy.Wood: 2200, economy.Clay: 1900, economy.Iron: 2040, economy.Crop: 520}, Duration: 9720 * time.Second, Requires: Academy},
	},
}

func Unit(name string) (UnitDef, error) {
	def, ok := unitDefs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return UnitDef{}, ErrUnknownUnit
	}
	return def, nil
}

func AllUnitNames() []string {
	return []string{"legionnaire", "praetorian", "scout", "equites"}
}

// UnitSpeeds looks up speeds for a selection, failing on any unknown unit.
func UnitSpeeds(units map[string]int) (map[string]float64, error) {
	out := make(map[string]float64, len(units))
	for name := range units {
		def, err := Unit(name)
		if err != nil {
			return nil, err
		}
		out[def.Name] = def.Speed
	}
	return out, nil
}

func CropUpkeep(troops map[string]int) float64 {
	total := 0.0
	for name, count := range troops {
		if def, ok := unitDefs[name]; ok && count > 0 {
			total += def.CropUpkeep * float64(count)
		}
	}
	return total
}

// ParseSelection reads "legionnaire:5,scout:2". Repeated names add up; names
// are not checked against the catalog.
func ParseSelection(raw string) (map[string]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	out := map[string]int{}
	for _, part := range strings.Split(raw, ",") {
		name, count, ok := strings.Cut(strings.TrimSpace(part), ":")
		name = strings.ToLower(strings.TrimSpace(name))
		if !ok || name == "" {
			return nil, ErrBadSelection
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n < 0 {
			return nil, ErrBadSelection
		}
		out[name] += n
	}
	return out, nil
}
