// internal/entity/impact.go
package entity

import (
	"github.com/jakecoffman/cp"

	"go-towerino/internal/defs"
	"go-towerino/internal/pool"
	"go-towerino/internal/tween"
)

// Impact — вспышка попадания из пула. Живёт Duration секунд.
type Impact struct {
	pool.Handle
	world *World
	def   defs.ImpactDefinition

	Position cp.Vector
	Progress float64 // 0..1
	id       tween.ID
}

func (i *Impact) Definition() defs.ImpactDefinition { return i.def }

func (i *Impact) TurnOn(pos cp.Vector) {
	i.def, _ = i.world.Defs.Impact(i.Archetype())
	i.Position = pos
	i.Progress = 0
	i.world.Anim.Cancel(i.id)
	i.id = i.world.Anim.Start(0, 1, i.def.Duration, tween.Linear,
		func(v float64) { i.Progress = v },
		leaseGuard(&i.Handle, func() { i.TurnOff(true) }))
}

func (i *Impact) TurnOff(bool) {
	if !i.Active() {
		return
	}
	i.world.Anim.Cancel(i.id)
	i.id = 0
	releaseTo(i.world.Impacts, i, i.world.log)
}
