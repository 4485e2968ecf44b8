// internal/ui/player_health_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-towerino/internal/assets"
	"go-towerino/internal/tween"
)

const (
	HealthCols          = 10
	HealthCircleRadius  = 8.0
	HealthCircleSpacing = 4.0
	healthFadeIn        = 1.0
)

// PlayerHealthIndicator отображает жизни игрока сеткой кружков.
// Появляется плавно с первой волной уровня.
type PlayerHealthIndicator struct {
	X, Y  float32
	Lives int
	Max   int

	anim  *tween.Animator
	id    tween.ID
	alpha float64
}

// NewPlayerHealthIndicator создает новый индикатор здоровья.
func NewPlayerHealthIndicator(x, y float32, anim *tween.Animator) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y, anim: anim}
}

// Show запускает появление, если индикатор ещё скрыт.
func (i *PlayerHealthIndicator) Show() {
	if i.alpha > 0 || i.anim.IsTweening(i.id) {
		return
	}
	i.id = i.anim.Start(0, 1, healthFadeIn, tween.Linear, func(v float64) { i.alpha = v }, nil)
}

// Hide прячет индикатор сразу, как при загрузке уровня.
func (i *PlayerHealthIndicator) Hide() {
	i.anim.Cancel(i.id)
	i.alpha = 0
}

func (i *PlayerHealthIndicator) Set(lives, max int) {
	i.Lives = lives
	i.Max = max
}

// Draw рисует жизни: полные — красные, потерянные — чёрные.
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, fonts *assets.FontManager) {
	if i.alpha <= 0 || i.Max <= 0 {
		return
	}
	for j := 0; j < i.Max; j++ {
		row := j / HealthCols
		col := j % HealthCols
		x := i.X + float32(col)*(HealthCircleRadius*2+HealthCircleSpacing) + HealthCircleRadius
		y := i.Y + float32(row)*(HealthCircleRadius*2+HealthCircleSpacing) + HealthCircleRadius

		c := color.RGBA{0, 0, 0, 255}
		if j < i.Lives {
			c = color.RGBA{220, 40, 40, 255}
		}
		vector.DrawFilledCircle(screen, x, y, HealthCircleRadius, fade(c, i.alpha), true)
		vector.StrokeCircle(screen, x, y, HealthCircleRadius, 1, fade(color.RGBA{255, 255, 255, 255}, i.alpha), true)
	}
	label := strconv.Itoa(i.Lives) + "/" + strconv.Itoa(i.Max)
	DrawLabel(screen, fonts, label, float64(i.X), float64(i.Y)-20, 14, fade(color.RGBA{255, 255, 255, 255}, i.alpha), AlignStart)
}
