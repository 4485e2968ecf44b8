// internal/component/turret.go
package component

import (
	"math"

	"go-towerino/internal/utils"
)

// TurretComponent отвечает за вращение "головы" башни.
type TurretComponent struct {
	// CurrentAngle - текущий угол поворота в радианах.
	CurrentAngle float32
	// TurnSpeed - скорость наведения (доля пути за секунду).
	TurnSpeed float32
	// IdleSpeed - скорость холостого вращения, рад/с.
	IdleSpeed float32
}

// Aim плавно доворачивает турель к углу target.
func (t *TurretComponent) Aim(target float32, dt float64) {
	k := t.TurnSpeed * float32(dt)
	if k > 1 {
		k = 1
	}
	t.CurrentAngle = utils.LerpAngle(t.CurrentAngle, target, k)
}

// Spin — холостое вращение при поиске цели.
func (t *TurretComponent) Spin(dt float64) {
	t.CurrentAngle = utils.WrapAngle(t.CurrentAngle + t.IdleSpeed*float32(dt))
}

// AngleTo возвращает угол направления из (fx, fy) в (tx, ty).
func AngleTo(fx, fy, tx, ty float64) float32 {
	return float32(math.Atan2(ty-fy, tx-fx))
}
