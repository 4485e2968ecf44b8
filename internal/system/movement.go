// internal/system/movement.go
package system

import (
	"go-towerino/internal/entity"
)

// MovementSystem двигает живых врагов по маршрутам и переносит коллайдеры.
type MovementSystem struct {
	world *entity.World
}

func NewMovementSystem(world *entity.World) *MovementSystem {
	return &MovementSystem{world: world}
}

func (s *MovementSystem) Update(deltaTime float64) {
	s.world.Enemies.Each(func(e *entity.Enemy) {
		if e.State != entity.EnemyAlive {
			return
		}
		e.SetPosition(e.Agent.Advance(e.Position, deltaTime))
	})
	// коллайдеры сдвинуты, переиндексируем до запросов башен и снарядов
	s.world.Physics.Step(deltaTime)
}
