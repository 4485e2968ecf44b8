// internal/entity/fx.go
package entity

import "go-towerino/internal/tween"

// TowerFx — дополнительные эффекты башни, которые дёргает её снаряд.
type TowerFx interface {
	OnProjectileReady()
	OnProjectileFired()
	OnProjectileHit()
}

// SparksFx: фитиль пушки горит, пока ядро заряжено.
type SparksFx struct {
	Burning bool
}

func (f *SparksFx) OnProjectileReady() { f.Burning = true }
func (f *SparksFx) OnProjectileFired() { f.Burning = false }
func (f *SparksFx) OnProjectileHit()   {}

// CatapultFx: рычаг катапульты делает взмах при выстреле.
type CatapultFx struct {
	Arm   float64 // 0 — взведён, 1 — в верхней точке
	Swing int
	anim  *tween.Animator
	id    tween.ID
}

func (f *CatapultFx) OnProjectileReady() {}

func (f *CatapultFx) OnProjectileFired() {
	f.Swing++
	f.anim.Cancel(f.id)
	f.id = f.anim.Start(0, 1, 0.15, tween.OutQuad, func(v float64) { f.Arm = v }, func() {
		f.id = f.anim.Start(1, 0, 0.6, tween.InQuad, func(v float64) { f.Arm = v }, nil)
	})
}

func (f *CatapultFx) OnProjectileHit() {}

func newTowerFx(kind string, w *World) TowerFx {
	switch kind {
	case "sparks":
		return &SparksFx{}
	case "catapult":
		return &CatapultFx{anim: w.Anim}
	}
	return nil
}
