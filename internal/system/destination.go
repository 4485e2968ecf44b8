// internal/system/destination.go
package system

import (
	"github.com/jakecoffman/cp"

	"go-towerino/internal/entity"
	"go-towerino/internal/physics"
)

// ArrivalSink получает врагов, вошедших в зону цели.
type ArrivalSink interface {
	EnemyReachedDestination(e *entity.Enemy)
}

// DestinationSystem — триггер зоны цели. Каждый враг передаётся не больше одного раза.
type DestinationSystem struct {
	world  *entity.World
	center cp.Vector
	radius float64
	sink   ArrivalSink
}

func NewDestinationSystem(world *entity.World, center cp.Vector, radius float64, sink ArrivalSink) *DestinationSystem {
	return &DestinationSystem{world: world, center: center, radius: radius, sink: sink}
}

func (s *DestinationSystem) Center() cp.Vector { return s.center }
func (s *DestinationSystem) Radius() float64   { return s.radius }

func (s *DestinationSystem) Update() {
	for _, hit := range s.world.Physics.Overlapping(s.center, s.radius, physics.CategoryEnemy) {
		e, ok := hit.Collider.Owner.(*entity.Enemy)
		if !ok || e.ReachedDestination() || e.State != entity.EnemyAlive {
			continue
		}
		s.sink.EnemyReachedDestination(e.SetReachedDestination(true))
	}
}
