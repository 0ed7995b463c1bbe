package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccrue_StaysWithinAmountAndCapacity(t *testing.T) {
	cases := []struct {
		name     string
		amount   float64
		capacity float64
		rate     float64
		elapsed  float64
		want     float64
	}{
		{name: "no time passed", amount: 100, capacity: 800, rate: 10, elapsed: 0, want: 100},
		{name: "partial fill", amount: 100, capacity: 800, rate: 10, elapsed: 20, want: 300},
		{name: "capped at capacity", amount: 700, capacity: 800, rate: 10, elapsed: 3600, want: 800},
		{name: "negative elapsed ignored", amount: 100, capacity: 800, rate: 10, elapsed: -50, want: 100},
		{name: "zero rate", amount: 42, capacity: 800, rate: 0, elapsed: 999, want: 42},
		{name: "drain floors at zero", amount: 10, capacity: 800, rate: -1, elapsed: 60, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Accrue(tc.amount, tc.capacity, tc.rate, tc.elapsed)
			if got != tc.want {
				t.Fatalf("Accrue()=%v want %v", got, tc.want)
			}
		})
	}
}

func TestAccrue_MonotoneForNonNegativeRate(t *testing.T) {
	for amount := 0.0; amount <= 800; amount += 97 {
		for rate := 0.0; rate <= 5; rate += 0.75 {
			for elapsed := 0.0; elapsed <= 1000; elapsed += 133 {
				got := Accrue(amount, 800, rate, elapsed)
				if got < amount || got > 800 {
					t.Fatalf("Accrue(%v, 800, %v, %v)=%v out of [%v, 800]", amount, rate, elapsed, got, amount)
				}
			}
		}
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 800))
	assert.Equal(t, 100.0, Percentage(800, 800))
	assert.Equal(t, 100.0, Percentage(1000, 800))
	assert.Equal(t, 0.0, Percentage(50, 0))
	assert.InDelta(t, 37.5, Percentage(300, 800), 1e-9)
}

func TestProgressClamps(t *testing.T) {
	assert.Equal(t, 100.0, Progress(150, 100))
	assert.Equal(t, 0.0, Progress(0, 10))
	assert.Equal(t, 0.0, Progress(-5, 10))
	assert.Equal(t, 0.0, Progress(5, 0))
	assert.InDelta(t, 50.0, Progress(5, 10), 1e-9)
}

func TestTimeToFull(t *testing.T) {
	seconds, ok := TimeToFull(0, 800, 10)
	if !ok || seconds != 80 {
		t.Fatalf("TimeToFull()=(%v,%v) want (80,true)", seconds, ok)
	}
	if got := FormatTimeToFull(0, 800, 10); got != "00:01:20" {
		t.Fatalf("FormatTimeToFull()=%q want 00:01:20", got)
	}
	if _, ok := TimeToFull(0, 800, 0); ok {
		t.Fatalf("expected infinite time to full for zero rate")
	}
	if got := FormatTimeToFull(0, 800, 0); got != InfiniteSentinel {
		t.Fatalf("FormatTimeToFull()=%q want %q", got, InfiniteSentinel)
	}
	if got := FormatTimeToFull(800, 800, 3); got != "00:00:00" {
		t.Fatalf("full storage should report 00:00:00, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(26*time.Hour + 3*time.Minute + 9*time.Second); got != "26:03:09" {
		t.Fatalf("FormatDuration()=%q", got)
	}
	if got := FormatDuration(-time.Second); got != "00:00:00" {
		t.Fatalf("negative duration should clamp, got %q", got)
	}
}
