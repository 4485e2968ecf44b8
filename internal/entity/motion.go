// internal/entity/motion.go
package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"go-towerino/internal/config"
	"go-towerino/internal/defs"
)

// motion — модель полёта снаряда.
type motion interface {
	launch(p *Projectile, target *Enemy)
	step(p *Projectile, dt float64)
	onHit(p *Projectile)
}

var motions = map[defs.MotionModel]motion{
	defs.MotionStraight:  straightMotion{},
	defs.MotionBallistic: ballisticMotion{},
}

// straightMotion: постоянная скорость к центру цели в момент выстрела.
type straightMotion struct{}

func (straightMotion) launch(p *Projectile, target *Enemy) {
	dx := target.BoundsCenter().Sub(p.Position)
	dz := config.EnemyCenterHeight - p.Altitude
	length := math.Sqrt(dx.LengthSq() + dz*dz)
	if length == 0 {
		p.registerHit(target, p.Position, p.Altitude)
		return
	}
	k := p.def.Speed / length
	p.Velocity = dx.Mult(k)
	p.VerticalVelocity = dz * k
}

func (straightMotion) step(p *Projectile, dt float64) {
	p.Position = p.Position.Add(p.Velocity.Mult(dt))
	p.Altitude += p.VerticalVelocity * dt
}

func (straightMotion) onHit(p *Projectile) {
	p.Velocity = cp.Vector{}
	p.VerticalVelocity = 0
}

// ballisticMotion: навесной бросок под 45° в упреждённую точку, дальше — гравитация.
type ballisticMotion struct{}

func (ballisticMotion) launch(p *Projectile, target *Enemy) {
	ahead := p.def.FireAheadMultiplier
	aim := target.BoundsCenter().Add(target.Heading().Mult(target.Speed() * ahead))
	vx, vy, vz := BallisticVelocity(p.Position, p.Altitude, aim, config.EnemyCenterHeight, config.Gravity)
	if isBad(vx) || isBad(vy) || isBad(vz) {
		p.world.log.WithFields(logrus.Fields{"projectile": p.def.ID, "aim": aim}).Warn("invalid firing solution, impact in place")
		p.registerHit(nil, p.Position, p.Altitude)
		return
	}
	p.gravity = config.Gravity
	p.Velocity = cp.Vector{X: vx, Y: vy}
	p.VerticalVelocity = vz
}

func (ballisticMotion) step(p *Projectile, dt float64) {
	p.VerticalVelocity -= p.gravity * dt
	p.Position = p.Position.Add(p.Velocity.Mult(dt))
	p.Altitude += p.VerticalVelocity * dt
}

func (ballisticMotion) onHit(p *Projectile) {
	p.gravity = 0
	p.Velocity = cp.Vector{}
	p.VerticalVelocity = 0
}

// BallisticVelocity возвращает начальную скорость броска из (from, fromAlt) в (to, toAlt).
// Горизонтальную дальность d заменяем вертикальной составляющей, отсюда угол 45°;
// модуль скорости sqrt((d+h)*g). Если цель выше, чем позволяет бросок, результат NaN.
func BallisticVelocity(from cp.Vector, fromAlt float64, to cp.Vector, toAlt, gravity float64) (vx, vy, vz float64) {
	dir := to.Sub(from)
	h := toAlt - fromAlt
	d := dir.Length()
	dist := d + h
	speed := math.Sqrt(dist * gravity)
	n := math.Sqrt(dir.LengthSq() + d*d)
	return speed * dir.X / n, speed * dir.Y / n, speed * d / n
}

func isBad(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
