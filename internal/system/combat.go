// internal/system/combat.go
package system

import (
	"go-towerino/internal/entity"
)

// CombatSystem управляет атакой башен: поиск цели, наведение, выстрел.
type CombatSystem struct {
	world *entity.World
}

func NewCombatSystem(world *entity.World) *CombatSystem {
	return &CombatSystem{world: world}
}

func (s *CombatSystem) Update(deltaTime float64) {
	s.world.Towers.Each(func(t *entity.Tower) {
		t.Update(deltaTime)
	})
}
