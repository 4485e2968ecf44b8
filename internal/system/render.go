// internal/system/render.go
package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-towerino/internal/config"
	"go-towerino/internal/entity"
	"go-towerino/pkg/render"
)

// altitudeScale переводит высоту над картой в смещение по экрану вверх.
const altitudeScale = 0.5

// RenderSystem рисует сущности мира поверх карты.
type RenderSystem struct {
	world *entity.World
}

func NewRenderSystem(world *entity.World) *RenderSystem {
	return &RenderSystem{world: world}
}

func (s *RenderSystem) Draw(screen *ebiten.Image, gameTime float64) {
	s.world.Impacts.Each(func(i *entity.Impact) { drawImpact(screen, i) })
	s.world.Enemies.Each(func(e *entity.Enemy) { drawEnemy(screen, e) })
	s.world.Towers.Each(func(t *entity.Tower) { drawTower(screen, t, gameTime) })
	s.world.Projectiles.Each(func(p *entity.Projectile) { drawProjectile(screen, p) })
	s.world.HealthBars.Each(func(b *entity.HealthBar) { drawHealthBar(screen, b) })
}

func drawEnemy(screen *ebiten.Image, e *entity.Enemy) {
	r := e.Shape.Radius * float32(e.Visual.Scale)
	if r <= 0 {
		return
	}
	c := render.LerpColor(e.Shape.Color, config.FlashColor, e.Visual.Flash)
	c = render.ScaleAlpha(c, e.Visual.Alpha)
	x, y := float32(e.Position.X), float32(e.Position.Y)
	vector.DrawFilledCircle(screen, x, y, r, c, true)
	// направление движения
	h := e.Heading()
	vector.StrokeLine(screen, x, y, x+float32(h.X)*r, y+float32(h.Y)*r, 2, render.ScaleAlpha(config.TextDarkColor, e.Visual.Alpha), true)
}

func drawTower(screen *ebiten.Image, t *entity.Tower, gameTime float64) {
	r := t.Shape.Radius * float32(t.Visual.Scale)
	if r <= 0 {
		return
	}
	x, y := float32(t.Position.X), float32(t.Position.Y)
	if t.Shape.Outline {
		vector.DrawFilledCircle(screen, x, y, r+2, config.TowerStrokeColor, true)
	}
	vector.DrawFilledCircle(screen, x, y, r, t.Shape.Color, true)

	angle := float64(t.Turret.CurrentAngle)
	barrel := r * 1.1
	switch fx := t.Fx().(type) {
	case *entity.CatapultFx:
		// рычаг укорачивается в верхней точке взмаха
		barrel = r * float32(1.1-0.6*fx.Arm)
	case *entity.SparksFx:
		if fx.Burning {
			pulse := float32(2 + math.Sin(gameTime*20))
			tipX := x + float32(math.Cos(angle))*r*0.4
			tipY := y + float32(math.Sin(angle))*r*0.4
			vector.DrawFilledCircle(screen, tipX, tipY, pulse, config.ImpactColor, true)
		}
	}
	ex := x + float32(math.Cos(angle))*barrel
	ey := y + float32(math.Sin(angle))*barrel
	vector.StrokeLine(screen, x, y, ex, ey, 4, render.DarkenColor(t.Shape.Color), true)
}

func drawProjectile(screen *ebiten.Image, p *entity.Projectile) {
	r := p.Shape.Radius * float32(p.Visual.Scale)
	if r <= 0 {
		return
	}
	x, y := float32(p.Position.X), float32(p.Position.Y)
	lift := float32(math.Max(p.Altitude, 0) * altitudeScale)
	if lift > 0 {
		render.FillEllipse(screen, x, y, r, r*0.5, color.RGBA{0, 0, 0, 90})
	}
	vector.DrawFilledCircle(screen, x, y-lift, r, p.Shape.Color, true)
}

func drawImpact(screen *ebiten.Image, i *entity.Impact) {
	def := i.Definition()
	k := i.Progress
	r := float32(def.Radius * (0.3 + 0.7*k))
	if r <= 0 {
		return
	}
	c := render.ScaleAlpha(def.Color.Color(), 1-k)
	vector.DrawFilledCircle(screen, float32(i.Position.X), float32(i.Position.Y), r, c, true)
}

func drawHealthBar(screen *ebiten.Image, b *entity.HealthBar) {
	if !b.Visible {
		return
	}
	const w, h = 24, 4
	x := float32(b.Position.X) - w/2
	y := float32(b.Position.Y) - h/2
	vector.DrawFilledRect(screen, x, y, w, h, config.HealthBarBack, false)
	vector.DrawFilledRect(screen, x, y, w*float32(b.Fraction), h, config.HealthBarFront, false)
}
