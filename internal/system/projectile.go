// internal/system/projectile.go
package system

import (
	"go-towerino/internal/entity"
)

// ProjectileSystem управляет полётом снарядов и нанесением урона.
// Урон и учёт смертей происходят в том же тике, что и попадание.
type ProjectileSystem struct {
	world *entity.World
}

func NewProjectileSystem(world *entity.World) *ProjectileSystem {
	return &ProjectileSystem{world: world}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	s.world.Projectiles.Each(func(p *entity.Projectile) {
		p.Update(deltaTime)
	})
}
