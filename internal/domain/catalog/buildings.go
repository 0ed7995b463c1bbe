package catalog

import (
	"errors"
	"math"
	"strings"
	"time"

	"villagetick/internal/domain/economy"
)

var (
	ErrUnknownBuilding = errors.New("unknown building")
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrMaxLevel        = errors.New("building already at max level")
)

type BuildingType string

const (
	Woodcutter BuildingType = "woodcutter"
	ClayPit    BuildingType = "clay_pit"
	IronMine   BuildingType = "iron_mine"
	Cropland   BuildingType = "cropland"
	Warehouse  BuildingType = "warehouse"
	Granary    BuildingType = "granary"
	Barracks   BuildingType = "barracks"
	Academy    BuildingType = "academy"
)

const MaxLevel = 10

// Production per hour for resource fields at level 0..10.
var productionByLevel = [MaxLevel + 1]float64{3, 7, 13, 21, 31, 46, 70, 98, 140, 203, 280}

// Storage capacity for warehouse/granary at level 0..10.
var capacityByLevel = [MaxLevel + 1]float64{800, 1200, 1700, 2300, 3100, 4000, 5000, 6300, 7800, 9600, 11800}

type BuildingDef struct {
	Type     BuildingType
	BaseCost economy.Cost
	BaseTime time.Duration
	Produces economy.ResourceType
	Stores   []economy.ResourceType
	CostGrow float64
	TimeGrow float64
}

var buildingDefs = map[BuildingType]BuildingDef{
	Woodcutter: {Type: Woodcutter, BaseCost: economy.Cost{economy.Wood: 40, economy.Clay: 100, economy.Iron: 50, economy.Crop: 60}, BaseTime: 260 * time.Second, Produces: economy.Wood, CostGrow: 1.67, TimeGrow: 1.6},
	ClayPit:    {Type: ClayPit, BaseCost: economy.Cost{economy.Wood: 80, economy.Clay: 40, economy.Iron: 80, economy.Crop: 50}, BaseTime: 220 * time.Second, Produces: economy.Clay, CostGrow: 1.67, TimeGrow: 1.6},
	IronMine:   {Type: IronMine, BaseCost: economy.Cost{economy.Wood: 100, economy.Clay: 80, economy.Iron: 30, economy.Crop: 60}, BaseTime: 450 * time.Second, Produces: economy.Iron, CostGrow: 1.67, TimeGrow: 1.6},
	Cropland:   {Type: Cropland, BaseCost: economy.Cost{economy.Wood: 70, economy.Clay: 90, economy.Iron: 70, economy.Crop: 20}, BaseTime: 150 * time.Second, Produces: economy.Crop, CostGrow: 1.67, TimeGrow: 1.6},
	Warehouse:  {Type: Warehouse, BaseCost: economy.Cost{economy.Wood: 130, economy.Clay: 160, economy.Iron: 90, economy.Crop: 40}, BaseTime: 2000 * time.Second, Stores: []economy.ResourceType{economy.Wood, economy.Clay, economy.Iron}, CostGrow: 1.28, TimeGrow: 1.3},
	Granary:    {Type: Granary, BaseCost: economy.Cost{economy.Wood: 80, economy.Clay: 100, economy.Iron: 70, economy.Crop: 20}, BaseTime: 1600 * time.Second, Stores: []economy.ResourceType{economy.Crop}, CostGrow: 1.28, TimeGrow: 1.3},
	Barracks:   {Type: Barracks, BaseCost: economy.Cost{economy.Wood: 210, economy.Clay: 140, economy.Iron: 260, economy.Crop: 120}, BaseTime: 2000 * time.Second, CostGrow: 1.28, TimeGrow: 1.3},
	Academy:    {Type: Academy, BaseCost: economy.Cost{economy.Wood: 220, economy.Clay: 160, economy.Iron: 90, economy.Crop: 40}, BaseTime: 2000 * time.Second, CostGrow: 1.28, TimeGrow: 1.3},
}

func AllBuildingTypes() []BuildingType {
	return []BuildingType{Woodcutter, ClayPit, IronMine, Cropland, Warehouse, Granary, Barracks, Academy}
}

func Building(name string) (BuildingDef, error) {
	def, ok := buildingDefs[BuildingType(strings.ToLower(strings.TrimSpace(name)))]
	if !ok {
		return BuildingDef{}, ErrUnknownBuilding
	}
	return def, nil
}

// Upgrade returns cost and duration to raise the building to level.
func (d BuildingDef) Upgrade(level int) (economy.Cost, time.Duration, error) {
	if level < 1 || level > MaxLevel {
		return nil, 0, ErrMaxLevel
	}
	step := float64(level - 1)
	cost := d.BaseCost.ScaleFloat(math.Pow(d.CostGrow, step))
	seconds := math.Round(d.BaseTime.Seconds() * math.Pow(d.TimeGrow, step))
	return cost, time.Duration(seconds) * time.Second, nil
}

func ProductionPerHour(level int) float64 {
	return productionByLevel[clampLevel(level)]
}

func StorageCapacity(level int) float64 {
	return capacityByLevel[clampLevel(level)]
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

type ResourceEconomy struct {
	RatePerHour float64
	Capacity    float64
}

// Economy derives per-resource rate and capacity from building levels.
// Troop upkeep is subtracted from crop production.
func Economy(levels map[BuildingType]int, cropUpkeep float64) map[economy.ResourceType]ResourceEconomy {
	out := make(map[economy.ResourceType]ResourceEconomy, 4)
	for _, rt := range economy.AllResourceTypes() {
		out[rt] = ResourceEconomy{Capacity: StorageCapacity(0)}
	}
	for _, bt := range AllBuildingTypes() {
		def := buildingDefs[bt]
		level := levels[bt]
		if def.Produces != "" {
			e := out[def.Produces]
			e.RatePerHour = ProductionPerHour(level)
			out[def.Produces] = e
		}
		for _, rt := range def.Stores {
			e := out[rt]
			e.Capacity = StorageCapacity(level)
			out[rt] = e
		}
	}
	crop := out[economy.Crop]
	crop.RatePerHour -= cropUpkeep
	out[economy.Crop] = crop
	return out
}
