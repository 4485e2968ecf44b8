// internal/entity/tower.go
package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"go-towerino/internal/component"
	"go-towerino/internal/config"
	"go-towerino/internal/defs"
	"go-towerino/internal/physics"
	"go-towerino/internal/pool"
	"go-towerino/internal/tween"
)

type TowerState int

const (
	TowerOff TowerState = iota
	TowerArming
	TowerIdle
	TowerEngaging
	TowerCooldown
	TowerDisarming
)

func (s TowerState) String() string {
	return [...]string{"off", "arming", "idle", "engaging", "cooldown", "disarming"}[s]
}

// Tower — башня на базе. Ищет ближайшего врага, наводится и стреляет заряженным снарядом.
type Tower struct {
	pool.Handle
	world *World
	def   defs.TowerDefinition

	State    TowerState
	Combat   component.Combat
	Turret   component.TurretComponent
	Visual   component.Visual
	Shape    component.Shape
	Position cp.Vector

	ShotsFired int

	base       *Base
	target     pool.Ref[*Enemy]
	projectile *Projectile
	reload     component.Timer
	fx         TowerFx
	collider   *physics.Collider
	scaleTween tween.ID
}

func (t *Tower) Definition() defs.TowerDefinition { return t.def }
func (t *Tower) Base() *Base                      { return t.base }
func (t *Tower) Fx() TowerFx                      { return t.fx }

// Projectile возвращает заряженный снаряд, если он есть.
func (t *Tower) Projectile() *Projectile { return t.projectile }

// Target возвращает текущую цель, если ссылка ещё действительна.
func (t *Tower) Target() (*Enemy, bool) { return t.target.Get() }

// TurnOn ставит башню на базу и запускает анимацию появления.
func (t *Tower) TurnOn(base *Base) error {
	w := t.world
	def, ok := w.Defs.TowerByArchetype(t.Archetype())
	if !ok {
		return fmt.Errorf("entity: tower %q: %w", t.Archetype(), pool.ErrUnknownArchetype)
	}
	t.def = def
	t.base = base
	t.Position = base.Position
	t.Combat = component.Combat{
		AttackRange:    def.AttackRange,
		AttackInterval: def.AttackInterval,
		Cooldown:       def.AttackInterval,
	}
	t.Turret = component.TurretComponent{
		TurnSpeed: config.TowerAimSpeed,
		IdleSpeed: config.TowerIdleSpin,
	}
	t.Shape = component.Shape{Color: def.Color.Color(), Radius: float32(config.HexSize * 0.55), Outline: true}
	t.target = pool.Ref[*Enemy]{}
	t.projectile = nil
	t.reload.Cancel()
	t.ShotsFired = 0
	t.fx = newTowerFx(def.Fx, w)

	if t.collider == nil {
		t.collider = w.Physics.AddCircle(t, physics.CategoryTower, config.HexSize*0.5, t.Position)
	} else {
		t.collider.Place(t.Position)
		t.collider.SetEnabled(true)
	}

	t.State = TowerArming
	t.Visual.Reset()
	w.Anim.Cancel(t.scaleTween)
	t.scaleTween = w.Anim.Start(0, 1, config.TowerScaleTween, tween.OutBack,
		func(v float64) { t.Visual.Scale = v },
		leaseGuard(&t.Handle, func() {
			t.State = TowerIdle
			t.readyProjectile()
		}))
	return nil
}

// Ready — башня закончила анимацию появления и может стрелять.
func (t *Tower) Ready() bool {
	return t.State == TowerIdle || t.State == TowerEngaging || t.State == TowerCooldown
}

// readyProjectile заряжает новый снаряд. У башни не больше одного заряженного снаряда.
func (t *Tower) readyProjectile() {
	if !t.Ready() {
		return
	}
	if t.projectile != nil {
		t.projectile.TurnOff(true)
		t.projectile = nil
	}
	p, err := t.world.Projectiles.Acquire(t.def.Projectile)
	if err != nil {
		t.world.log.WithError(err).WithField("tower", t.def.ID).Error("ready projectile")
		return
	}
	if err := p.TurnOn(t); err != nil {
		t.world.log.WithError(err).WithField("tower", t.def.ID).Error("turn on projectile")
		releaseTo(t.world.Projectiles, p, t.world.log)
		return
	}
	t.projectile = p
}

// HasNoTarget: цели нет, она мертва, уже дошла или вышла из радиуса.
func (t *Tower) HasNoTarget() bool {
	e, ok := t.target.Get()
	if !ok {
		return true
	}
	return !e.IsAlive() || e.ReachedDestination() || t.Position.Distance(e.Position) > t.Combat.AttackRange
}

// Update — один тик башни.
func (t *Tower) Update(dt float64) {
	if !t.Ready() {
		return
	}
	t.reload.Tick(dt)
	if !t.Ready() {
		return
	}
	t.Combat.Cooldown -= dt

	if t.HasNoTarget() {
		t.target = pool.Ref[*Enemy]{}
		t.Turret.Spin(dt)
		t.lookForTarget()
	} else {
		e, _ := t.target.Get()
		t.Turret.Aim(component.AngleTo(t.Position.X, t.Position.Y, e.Position.X, e.Position.Y), dt)
		if t.Combat.Cooldown <= 0 && t.projectile != nil {
			t.fire(e)
		}
	}

	switch {
	case t.projectile == nil:
		t.State = TowerCooldown
	case t.HasNoTarget():
		t.State = TowerIdle
	default:
		t.State = TowerEngaging
	}
}

// lookForTarget берёт ближайшего врага в радиусе. При равных расстояниях остаётся первый найденный.
func (t *Tower) lookForTarget() {
	hits := t.world.Physics.Within(t.Position, t.Combat.AttackRange, physics.CategoryEnemy)
	var best *Enemy
	bestDist := math.Inf(1)
	for _, h := range hits {
		e, ok := h.Collider.Owner.(*Enemy)
		if !ok || !e.IsAlive() || e.ReachedDestination() {
			continue
		}
		if h.Distance < bestDist {
			best, bestDist = e, h.Distance
		}
	}
	if best != nil {
		t.target = pool.NewRef(best)
		t.world.log.WithFields(logrus.Fields{"tower": t.def.ID, "enemy": best.Archetype(), "distance": bestDist}).Trace("target acquired")
	}
}

// fire выпускает заряженный снаряд и через половину интервала заряжает следующий.
func (t *Tower) fire(e *Enemy) {
	t.Combat.Cooldown = t.Combat.AttackInterval
	p := t.projectile
	t.projectile = nil
	t.ShotsFired++
	p.Fire(e)
	t.reload.Start(t.Combat.AttackInterval/2, t.readyProjectile)
}

// AnchorPosition — точка, из которой вылетает снаряд.
func (t *Tower) AnchorPosition() (cp.Vector, float64) {
	return t.Position, config.TowerAnchorHeight
}

// TurnOff снимает башню. Повторный вызов ничего не делает.
func (t *Tower) TurnOff(instant bool) {
	if !t.Active() || t.State == TowerOff {
		return
	}
	if t.State == TowerDisarming && !instant {
		return
	}
	w := t.world
	t.reload.Cancel()
	if t.projectile != nil {
		t.projectile.TurnOff(true)
		t.projectile = nil
	}
	t.target = pool.Ref[*Enemy]{}
	if t.base != nil {
		t.base.UnsetTower()
		t.base = nil
	}
	if t.collider != nil {
		t.collider.SetEnabled(false)
	}
	w.Anim.Cancel(t.scaleTween)

	if instant {
		t.State = TowerOff
		releaseTo(w.Towers, t, w.log)
		return
	}
	t.State = TowerDisarming
	t.scaleTween = w.Anim.Start(t.Visual.Scale, 0, config.TowerScaleTween, tween.InBack,
		func(v float64) { t.Visual.Scale = v },
		leaseGuard(&t.Handle, func() {
			t.State = TowerOff
			releaseTo(w.Towers, t, w.log)
		}))
}

func (t *Tower) Destroy() {
	if t.collider != nil {
		t.world.Physics.Remove(t.collider)
		t.collider = nil
	}
}
