package utils

import (
	"math"
	"testing"
)

func TestLerpAngleTakesShortestPath(t *testing.T) {
	from := float32(math.Pi - 0.1)
	to := float32(-math.Pi + 0.1)
	got := LerpAngle(from, to, 0.5)
	if math.Abs(math.Abs(float64(got))-math.Pi) > 1e-4 {
		t.Errorf("Expected to cross ±π, got %v", got)
	}
}

func TestAngleDelta(t *testing.T) {
	cases := []struct {
		from, to, want float32
	}{
		{0, 1, 1},
		{1, 0, -1},
		{3, -3, float32(2*math.Pi - 6)},
		{-3, 3, float32(6 - 2*math.Pi)},
	}
	for _, c := range cases {
		got := AngleDelta(c.from, c.to)
		if math.Abs(float64(got-c.want)) > 1e-5 {
			t.Errorf("AngleDelta(%v, %v): expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

func TestDiceIsSeeded(t *testing.T) {
	a := NewDice(42)
	b := NewDice(42)
	for i := 0; i < 10; i++ {
		if a.Pick(5) != b.Pick(5) {
			t.Fatal("Expected identical sequences for the same seed")
		}
	}
	if got := a.Pick(0); got != 0 {
		t.Errorf("Expected 0 for empty range, got %d", got)
	}
}
