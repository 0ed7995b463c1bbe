package economy

import (
	"fmt"
	"math"
	"time"
)

// InfiniteSentinel is shown instead of a time-to-full when storage never fills.
const InfiniteSentinel = "∞"

func Accrue(amount, capacity, ratePerSecond, elapsedSeconds float64) float64 {
	if elapsedSeconds < 0 || math.IsNaN(elapsedSeconds) {
		elapsedSeconds = 0
	}
	if capacity < 0 {
		capacity = 0
	}
	next := amount + ratePerSecond*elapsedSeconds
	if next > capacity {
		next = capacity
	}
	if next < 0 {
		next = 0
	}
	return next
}

func Percentage(amount, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return Progress(amount, capacity)
}

// Progress maps value/target onto [0,100].
func Progress(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := 100 * value / target
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// TimeToFull returns seconds until amount reaches capacity. ok is false when the
// rate never fills storage.
func TimeToFull(amount, capacity, ratePerSecond float64) (float64, bool) {
	if ratePerSecond <= 0 {
		return 0, false
	}
	if amount >= capacity {
		return 0, true
	}
	return (capacity - amount) / ratePerSecond, true
}

func FormatTimeToFull(amount, capacity, ratePerSecond float64) string {
	seconds, ok := TimeToFull(amount, capacity, ratePerSecond)
	if !ok {
		return InfiniteSentinel
	}
	return FormatDuration(time.Duration(math.Ceil(seconds)) * time.Second)
}

// FormatDuration renders HH:MM:SS. Hours are not wrapped at 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
