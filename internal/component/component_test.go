package component

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestHealthApplyFloorsAtZero(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		damage  float64
		want    float64
		isAlive bool
	}{
		{"partial", 10, 6, 4, true},
		{"exact", 4, 4, 0, false},
		{"overkill", 4, 6, 0, false},
		{"negative damage ignored", 5, -3, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Health{Current: tt.start, Max: 10}
			if got := h.Apply(tt.damage); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if h.Alive() != tt.isAlive {
				t.Errorf("Expected alive=%v", tt.isAlive)
			}
		})
	}
}

func TestTimerFiresOnce(t *testing.T) {
	var tm Timer
	fired := 0
	tm.Start(1.0, func() { fired++ })
	tm.Tick(0.5)
	if fired != 0 {
		t.Fatalf("Expected not fired yet")
	}
	if !tm.Tick(0.5) {
		t.Error("Expected Tick to report firing")
	}
	tm.Tick(1.0)
	if fired != 1 {
		t.Errorf("Expected 1 fire, got %d", fired)
	}
	if tm.Active() {
		t.Error("Expected timer inactive after firing")
	}
}

func TestTimerCancel(t *testing.T) {
	var tm Timer
	fired := false
	tm.Start(0.1, func() { fired = true })
	tm.Cancel()
	tm.Tick(1)
	if fired {
		t.Error("Expected cancelled timer not to fire")
	}
}

func TestTimerRestartReplacesAction(t *testing.T) {
	var tm Timer
	first, second := false, false
	tm.Start(0.1, func() { first = true })
	tm.Start(0.2, func() { second = true })
	tm.Tick(0.3)
	if first || !second {
		t.Errorf("Expected only second action, got first=%v second=%v", first, second)
	}
}

func TestTimerActionCanRestart(t *testing.T) {
	var tm Timer
	count := 0
	var again func()
	again = func() {
		count++
		if count < 3 {
			tm.Start(1, again)
		}
	}
	tm.Start(1, again)
	for i := 0; i < 5; i++ {
		tm.Tick(1)
	}
	if count != 3 {
		t.Errorf("Expected 3 runs, got %d", count)
	}
}

func TestAgentAdvanceFollowsRoute(t *testing.T) {
	var a Agent
	a.SetRoute([]cp.Vector{{X: 10, Y: 0}, {X: 10, Y: 10}}, 5)
	pos := cp.Vector{}
	pos = a.Advance(pos, 1)
	if pos != (cp.Vector{X: 5, Y: 0}) {
		t.Errorf("Expected (5,0), got %v", pos)
	}
	pos = a.Advance(pos, 2)
	if math.Abs(pos.X-10) > 1e-9 || math.Abs(pos.Y-5) > 1e-9 {
		t.Errorf("Expected (10,5), got %v", pos)
	}
	pos = a.Advance(pos, 10)
	if !a.Finished() || pos != (cp.Vector{X: 10, Y: 10}) {
		t.Errorf("Expected finished at (10,10), got %v finished=%v", pos, a.Finished())
	}
	if v := a.Velocity(); v != (cp.Vector{}) {
		t.Errorf("Expected zero velocity when finished, got %v", v)
	}
}

func TestAgentStopped(t *testing.T) {
	var a Agent
	a.SetRoute([]cp.Vector{{X: 10, Y: 0}}, 5)
	a.Stopped = true
	if got := a.Advance(cp.Vector{}, 1); got != (cp.Vector{}) {
		t.Errorf("Expected stopped agent to stay, got %v", got)
	}
}
