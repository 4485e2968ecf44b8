// internal/entity/enemy.go
package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"go-towerino/internal/component"
	"go-towerino/internal/config"
	"go-towerino/internal/defs"
	"go-towerino/internal/physics"
	"go-towerino/internal/pool"
	"go-towerino/internal/tween"
	"go-towerino/pkg/hexmap"
)

type EnemyState int

const (
	EnemyInactive EnemyState = iota
	EnemyAlive
	EnemyDying
	EnemyArriving
)

func (s EnemyState) String() string {
	switch s {
	case EnemyAlive:
		return "alive"
	case EnemyDying:
		return "dying"
	case EnemyArriving:
		return "arriving"
	}
	return "inactive"
}

// Enemy — враг из пула. Уходит со сцены ровно одним путём: смерть или прибытие.
type Enemy struct {
	pool.Handle
	world *World
	def   defs.EnemyDefinition

	State       EnemyState
	Health      component.Health
	Agent       component.Agent
	Visual      component.Visual
	Shape       component.Shape
	Position    cp.Vector
	Destination cp.Vector
	Lanes       hexmap.LaneMask

	reached  bool
	removed  bool // счётчик активных врагов уже уменьшен в этой аренде
	collider *physics.Collider
	hpBar    *HealthBar
	tweens   [2]tween.ID // масштаб/растворение и вспышка
}

func (e *Enemy) Definition() defs.EnemyDefinition { return e.def }

// TurnOn активирует врага в точке spawn с маршрутом до destination по дорожкам lanes.
func (e *Enemy) TurnOn(spawn, destination cp.Vector, lanes hexmap.LaneMask) error {
	w := e.world
	def, ok := w.Defs.Enemy(e.Archetype())
	if !ok {
		return fmt.Errorf("entity: enemy %q: %w", e.Archetype(), pool.ErrUnknownArchetype)
	}
	route, err := w.Nav.Route(spawn, destination, lanes)
	if err != nil {
		return fmt.Errorf("entity: enemy %q route: %w", e.Archetype(), err)
	}

	e.def = def
	e.State = EnemyAlive
	e.Health = component.Health{Max: def.Health}
	e.Health.Reset()
	e.reached = false
	e.removed = false
	e.Position = spawn
	e.Destination = destination
	e.Lanes = lanes
	e.Agent.SetRoute(route, def.Speed)
	e.Agent.Heading = cp.Vector{}
	if len(route) > 0 {
		e.Agent.Heading = route[0].Sub(spawn).Normalize()
	}
	e.Shape.Color = def.Color.Color()
	e.Shape.Radius = float32(e.radius())

	if e.collider == nil {
		e.collider = w.Physics.AddCircle(e, physics.CategoryEnemy, e.radius(), spawn)
	} else {
		e.collider.Place(spawn)
		e.collider.SetEnabled(true)
	}

	e.cancelTweens()
	e.Visual.Reset()
	e.tweens[0] = w.Anim.Start(0, 1, 0.25, tween.OutQuad, func(v float64) { e.Visual.Scale = v }, nil)

	if bar, err := w.HealthBars.Acquire("healthbar"); err != nil {
		w.log.WithError(err).Warn("no health bar for enemy")
	} else {
		bar.TurnOn(e)
		e.hpBar = bar
	}
	return nil
}

func (e *Enemy) radius() float64 {
	if e.def.Radius > 0 {
		return e.def.Radius
	}
	return config.EnemyRadius
}

// IsAlive — здоровье больше нуля в текущей аренде.
func (e *Enemy) IsAlive() bool {
	return e.Active() && e.State != EnemyInactive && e.Health.Alive()
}

func (e *Enemy) ReachedDestination() bool { return e.reached }

// BoundsCenter — центр коллайдера в плоскости; высота центра — config.EnemyCenterHeight.
func (e *Enemy) BoundsCenter() cp.Vector { return e.Position }

func (e *Enemy) Speed() float64     { return e.def.Speed }
func (e *Enemy) Heading() cp.Vector { return e.Agent.Heading }
func (e *Enemy) Reward() int        { return e.def.Reward }

// SetPosition двигает врага и его коллайдер.
func (e *Enemy) SetPosition(p cp.Vector) {
	e.Position = p
	if e.collider != nil {
		e.collider.SetPosition(p)
	}
}

// ApplyDamage снимает здоровье. Прибывшие и уже умирающие враги неуязвимы.
func (e *Enemy) ApplyDamage(amount float64) *Enemy {
	if e.reached || e.State != EnemyAlive || !e.Active() {
		return e
	}
	e.Health.Apply(amount)
	e.world.Hooks.EnemyHit(e.Position)

	if !e.Health.Alive() {
		e.disposeDeath()
		return e
	}

	w := e.world
	w.Anim.Cancel(e.tweens[1])
	e.tweens[1] = w.Anim.Start(1, 0, config.EnemyFlashDuration, tween.Linear, func(v float64) { e.Visual.Flash = v }, nil)
	return e
}

// SetReachedDestination защёлкивает флаг прибытия.
func (e *Enemy) SetReachedDestination(v bool) *Enemy {
	e.reached = v
	return e
}

// ClaimRemoval возвращает true только при первом вызове в аренде.
// Тот, кто получил true, обязан уменьшить счётчик активных врагов.
func (e *Enemy) ClaimRemoval() bool {
	if e.removed {
		return false
	}
	e.removed = true
	return true
}

// disposeDeath: награда и уменьшение счётчика в том же тике, возврат в пул — после растворения.
func (e *Enemy) disposeDeath() {
	w := e.world
	e.State = EnemyDying
	e.detach()

	if e.ClaimRemoval() {
		if err := w.Hooks.RemoveEnemy(); err != nil {
			w.log.WithError(err).WithField("enemy", e.Archetype()).Error("remove enemy on death")
		}
		w.Hooks.EnemyReward(e.def.Reward, e.Position)
	} else {
		w.log.WithFields(logrus.Fields{"enemy": e.Archetype(), "index": e.Index()}).Error("enemy died after it was already removed")
	}

	e.cancelTweens()
	e.tweens[0] = w.Anim.Start(1, 0, config.EnemyDeathDuration, tween.Linear,
		func(v float64) { e.Visual.Alpha = v },
		leaseGuard(&e.Handle, func() { e.TurnOff(true) }))
}

// DisposeReached — путь прибытия: подпрыгнуть, сжаться и вернуться в пул.
// Учёт жизней и счётчика ведёт планировщик волн.
func (e *Enemy) DisposeReached() {
	if e.State != EnemyAlive {
		e.world.log.WithFields(logrus.Fields{"enemy": e.Archetype(), "state": e.State}).Warn("dispose reached on non-alive enemy")
		return
	}
	w := e.world
	e.State = EnemyArriving
	e.reached = true
	e.detach()

	e.cancelTweens()
	d := config.EnemyReachedDuration
	e.tweens[0] = w.Anim.Start(1, 1.25, d*0.33, tween.OutQuad,
		func(v float64) { e.Visual.Scale = v },
		leaseGuard(&e.Handle, func() {
			e.tweens[0] = w.Anim.Start(1.25, 0, d*0.66, tween.InQuad,
				func(v float64) { e.Visual.Scale = v },
				leaseGuard(&e.Handle, func() { e.TurnOff(true) }))
		}))
}

// detach останавливает движение, выключает коллайдер и отдаёт полоску HP.
func (e *Enemy) detach() {
	e.Agent.Stopped = true
	if e.collider != nil {
		e.collider.SetEnabled(false)
	}
	if e.hpBar != nil {
		e.hpBar.TurnOff(true)
		e.hpBar = nil
	}
}

func (e *Enemy) cancelTweens() {
	for i, id := range e.tweens {
		e.world.Anim.Cancel(id)
		e.tweens[i] = 0
	}
}

// TurnOff возвращает врага в пул без учёта счётчика (сброс уровня или конец анимации).
func (e *Enemy) TurnOff(instant bool) {
	if !e.Active() {
		return
	}
	e.detach()
	e.cancelTweens()
	e.State = EnemyInactive
	releaseTo(e.world.Enemies, e, e.world.log)
}

// Destroy убирает коллайдер из физического мира.
func (e *Enemy) Destroy() {
	if e.collider != nil {
		e.world.Physics.Remove(e.collider)
		e.collider = nil
	}
}
