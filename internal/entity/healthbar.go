// internal/entity/healthbar.go
package entity

import (
	"github.com/jakecoffman/cp"

	"go-towerino/internal/config"
	"go-towerino/internal/pool"
)

// HealthBar — полоска HP над врагом. Видна, только когда враг ранен.
type HealthBar struct {
	pool.Handle
	world *World

	Visible  bool
	Fraction float64
	Position cp.Vector
	target   *Enemy
}

func (b *HealthBar) TurnOn(e *Enemy) {
	b.target = e
	b.Sync()
}

// Sync копирует здоровье и позицию цели.
func (b *HealthBar) Sync() {
	if b.target == nil {
		b.Visible = false
		return
	}
	b.Fraction = b.target.Health.Fraction()
	b.Visible = b.Fraction < 1
	b.Position = b.target.Position.Add(cp.Vector{Y: -(b.target.radius() + config.TextOffsetY + 2)})
}

func (b *HealthBar) TurnOff(bool) {
	if !b.Active() {
		return
	}
	b.target = nil
	b.Visible = false
	releaseTo(b.world.HealthBars, b, b.world.log)
}
