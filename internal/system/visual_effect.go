// internal/system/visual_effect.go
package system

import (
	"go-towerino/internal/entity"
)

// VisualEffectSystem синхронизирует полоски здоровья с врагами.
// Вспышки, растворение и эффекты попаданий ведёт аниматор.
type VisualEffectSystem struct {
	world *entity.World
}

func NewVisualEffectSystem(world *entity.World) *VisualEffectSystem {
	return &VisualEffectSystem{world: world}
}

func (s *VisualEffectSystem) Update(deltaTime float64) {
	s.world.HealthBars.Each(func(b *entity.HealthBar) {
		b.Sync()
	})
}
