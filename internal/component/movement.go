// component/movement.go
package component

import "github.com/jakecoffman/cp"

// Agent — движение по маршруту, выданному навигацией.
type Agent struct {
	Route   []cp.Vector
	Index   int
	Speed   float64
	Stopped bool
	Heading cp.Vector // единичный вектор направления, для упреждения
}

// SetRoute запускает агента по новому маршруту.
func (a *Agent) SetRoute(route []cp.Vector, speed float64) {
	a.Route = route
	a.Index = 0
	a.Speed = speed
	a.Stopped = false
}

// Finished reports whether the last waypoint was reached.
func (a *Agent) Finished() bool { return a.Index >= len(a.Route) }

// Velocity — текущая скорость агента в плоскости.
func (a *Agent) Velocity() cp.Vector {
	if a.Stopped || a.Finished() {
		return cp.Vector{}
	}
	return a.Heading.Mult(a.Speed)
}

// Advance двигает pos к следующей точке маршрута на speed*dt и возвращает новую позицию.
func (a *Agent) Advance(pos cp.Vector, dt float64) cp.Vector {
	if a.Stopped {
		return pos
	}
	moveDistance := a.Speed * dt
	for moveDistance > 0 && !a.Finished() {
		target := a.Route[a.Index]
		delta := target.Sub(pos)
		dist := delta.Length()
		if dist > 0 {
			a.Heading = delta.Mult(1 / dist)
		}
		if dist <= moveDistance {
			pos = target
			moveDistance -= dist
			a.Index++
			continue
		}
		pos = pos.Add(a.Heading.Mult(moveDistance))
		moveDistance = 0
	}
	return pos
}
