// internal/entity/projectile.go
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
	"go-towerino/pkg/utils"
)

type ProjectileState int

const (
	ProjectileOff ProjectileState = iota
	ProjectileReady
	ProjectileFlying
	ProjectileImpacted
	ProjectileFading
)

func (s ProjectileState) String() string {
	return [...]string{"off", "ready", "flying", "impacted", "fading"}[s]
}

// Projectile — снаряд башни. Положение в плоскости карты плюс высота над ней.
type Projectile struct {
	pool.Handle
	world *World
	def   defs.ProjectileDefinition

	State            ProjectileState
	Position         cp.Vector
	Altitude         float64
	Velocity         cp.Vector
	VerticalVelocity float64
	Visual           component.Visual
	Shape            component.Shape

	gravity          float64
	hitDetected      bool
	collisionEnabled bool
	tower            *Tower
	fx               TowerFx
	motion           motion
	autoKill         component.Timer
	scaleTween       tween.ID
}

func (p *Projectile) Definition() defs.ProjectileDefinition { return p.def }
func (p *Projectile) Fired() bool                           { return p.State >= ProjectileFlying }
func (p *Projectile) HitDetected() bool                     { return p.hitDetected }

// TurnOn заряжает снаряд в точку крепления башни.
func (p *Projectile) TurnOn(t *Tower) error {
	w := p.world
	def, ok := w.Defs.Projectile(p.Archetype())
	if !ok {
		return fmt.Errorf("entity: projectile %q: %w", p.Archetype(), pool.ErrUnknownArchetype)
	}
	m, ok := motions[def.Motion]
	if !ok {
		return fmt.Errorf("entity: projectile %q: unknown motion %q", def.ID, def.Motion)
	}
	p.def = def
	p.motion = m
	p.tower = t
	p.fx = t.fx
	p.Position, p.Altitude = t.AnchorPosition()
	p.Velocity = cp.Vector{}
	p.VerticalVelocity = 0
	p.gravity = 0
	p.hitDetected = false
	p.collisionEnabled = true
	p.autoKill.Cancel()
	p.Shape = component.Shape{Color: def.Color.Color(), Radius: float32(def.Radius)}
	p.State = ProjectileReady

	w.Anim.Cancel(p.scaleTween)
	p.Visual.Reset()
	p.scaleTween = w.Anim.Start(0, 1, config.ProjectileReadyTween, tween.OutBack, func(v float64) { p.Visual.Scale = v }, nil)

	if p.fx != nil {
		p.fx.OnProjectileReady()
	}
	return nil
}

// Fire отрывает снаряд от башни и запускает его в цель.
func (p *Projectile) Fire(target *Enemy) {
	if p.State != ProjectileReady {
		p.world.log.WithFields(logrus.Fields{"projectile": p.def.ID, "state": p.State}).Warn("fire on non-ready projectile")
		return
	}
	p.State = ProjectileFlying
	p.tower = nil
	if p.fx != nil {
		p.fx.OnProjectileFired()
	}
	autoKill := p.def.AutoKill
	if autoKill <= 0 {
		autoKill = config.ProjectileAutoKill
	}
	p.autoKill.Start(autoKill, func() { p.TurnOff(false) })
	p.motion.launch(p, target)
}

// Update двигает летящий снаряд и проверяет контакт с врагом или землёй.
func (p *Projectile) Update(dt float64) {
	if p.State != ProjectileFlying || p.hitDetected {
		return
	}
	if p.autoKill.Tick(dt) {
		return
	}
	prev, prevAlt := p.Position, p.Altitude
	p.motion.step(p, dt)
	if p.collisionEnabled {
		p.detectContact(prev, prevAlt)
	}
}

func (p *Projectile) detectContact(prev cp.Vector, prevAlt float64) {
	seg := p.Position.Sub(prev)
	segLen := seg.Length()
	if segLen > 1e-9 {
		// снаряд над первым врагом на отрезке ещё может задеть следующего
		for _, h := range p.world.Physics.Segment(prev, p.Position, p.def.Radius, physics.CategoryEnemy) {
			frac := utils.Clamp(h.Point.Distance(prev)/segLen, 0, 1)
			alt := prevAlt + (p.Altitude-prevAlt)*frac
			if e, isEnemy := h.Collider.Owner.(*Enemy); isEnemy && alt <= config.EnemyHeight+p.def.Radius {
				p.registerHit(e, h.Point, alt)
				return
			}
		}
	}
	if p.Altitude <= 0 {
		point := p.Position
		if prevAlt > 0 {
			frac := prevAlt / (prevAlt - p.Altitude)
			point = prev.Lerp(p.Position, frac)
		}
		p.registerHit(nil, point, 0)
	}
}

// registerHit фиксирует первый контакт. Повторные контакты игнорируются.
func (p *Projectile) registerHit(direct *Enemy, point cp.Vector, alt float64) {
	if p.hitDetected {
		return
	}
	p.hitDetected = true
	p.collisionEnabled = false
	p.State = ProjectileImpacted
	p.Position = point
	p.Altitude = alt
	p.motion.onHit(p)
	p.resolve(direct)
}

// resolve применяет урон: прямое попадание без радиуса или сплэш по всем врагам в радиусе.
func (p *Projectile) resolve(direct *Enemy) {
	w := p.world
	p.spawnImpact()

	dmg, r := p.def.ImpactDamage, p.def.DamageRadius
	switch {
	case r <= 0:
		if direct != nil {
			direct.ApplyDamage(dmg)
		}
	default:
		handled := false
		for _, h := range w.Physics.Overlapping(p.Position, r, physics.CategoryEnemy) {
			e, ok := h.Collider.Owner.(*Enemy)
			if !ok {
				continue
			}
			if e == direct {
				e.ApplyDamage(dmg)
				handled = true
				continue
			}
			if amount := SplashDamage(dmg, r, h.Distance); amount > 0 {
				e.ApplyDamage(amount)
			}
		}
		if direct != nil && !handled {
			direct.ApplyDamage(dmg)
		}
	}

	if p.fx != nil {
		p.fx.OnProjectileHit()
	}
	p.TurnOff(false)
}

func (p *Projectile) spawnImpact() {
	if p.def.Impact == "" {
		return
	}
	imp, err := p.world.Impacts.Acquire(p.def.Impact)
	if err != nil {
		p.world.log.WithError(err).WithField("impact", p.def.Impact).Warn("impact effect unavailable")
		return
	}
	imp.TurnOn(p.Position)
}

// SplashDamage — урон по расстоянию d от точки попадания: (1 - clamp(d,0,r)/r) * dmg.
func SplashDamage(dmg, r, d float64) float64 {
	if r <= 0 {
		return 0
	}
	return (1 - utils.Clamp(d, 0, r)/r) * dmg
}

// TurnOff гасит снаряд. Без instant он сжимается и только потом возвращается в пул.
func (p *Projectile) TurnOff(instant bool) {
	if !p.Active() || p.State == ProjectileOff {
		return
	}
	if p.State == ProjectileFading && !instant {
		return
	}
	w := p.world
	p.autoKill.Cancel()
	p.collisionEnabled = false
	w.Anim.Cancel(p.scaleTween)
	if p.tower != nil {
		if p.tower.projectile == p {
			p.tower.projectile = nil
		}
		p.tower = nil
	}

	if instant {
		p.State = ProjectileOff
		releaseTo(w.Projectiles, p, w.log)
		return
	}
	p.State = ProjectileFading
	p.scaleTween = w.Anim.Start(p.Visual.Scale, 0, config.ProjectileTurnOffTween, tween.Linear,
		func(v float64) { p.Visual.Scale = v },
		leaseGuard(&p.Handle, func() {
			p.State = ProjectileOff
			releaseTo(w.Projectiles, p, w.log)
		}))
}
