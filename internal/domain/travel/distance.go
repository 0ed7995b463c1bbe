package travel

import (
	"errors"
	"math"
)

const EarthRadiusKm = 6371.0

var (
	ErrNoUnits      = errors.New("no units selected")
	ErrInvalidSpeed = errors.New("unit speed must be positive")
)

type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func Euclidean(a, b Coordinate) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Hypot(dx, dy)
}

// Haversine returns the great-circle distance in kilometres.
func Haversine(a, b GeoPoint) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func SlowestSpeed(speeds []float64) (float64, error) {
	if len(speeds) == 0 {
		return 0, ErrNoUnits
	}
	slowest := math.Inf(1)
	for _, s := range speeds {
		if s <= 0 || math.IsNaN(s) {
			return 0, ErrInvalidSpeed
		}
		if s < slowest {
			slowest = s
		}
	}
	return slowest, nil
}

// TravelTicks is ceil(distance / slowest speed), speeds in fields per tick.
func TravelTicks(distance float64, speeds []float64) (int64, error) {
	slowest, err := SlowestSpeed(speeds)
	if err != nil {
		return 0, err
	}
	if distance <= 0 {
		return 0, nil
	}
	return int64(math.Ceil(distance / slowest)), nil
}
