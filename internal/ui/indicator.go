// internal/ui/indicator.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-towerino/internal/tween"
	"go-towerino/pkg/render"
)

const headStartFade = 0.33

// HeadStartIndicator — полоса форы перед волной. Сжимается от полной к нулю,
// цвет плавно уходит от StartColor к EndColor.
type HeadStartIndicator struct {
	X, Y          float32
	Width, Height float32
	StartColor    color.RGBA
	EndColor      color.RGBA

	Progress float64
	visible  bool
	alpha    float64
	anim     *tween.Animator
	id       tween.ID
}

func NewHeadStartIndicator(x, y, width, height float32, anim *tween.Animator) *HeadStartIndicator {
	return &HeadStartIndicator{
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		StartColor: color.RGBA{0, 200, 220, 255},
		EndColor:   color.RGBA{230, 60, 40, 255},
		anim:       anim,
	}
}

// SetProgress принимает долю прошедшей форы. 0 показывает полосу, 1 прячет.
func (i *HeadStartIndicator) SetProgress(fraction float64) {
	i.Progress = fraction
	switch {
	case fraction < 1 && !i.visible:
		i.visible = true
		i.fadeTo(1)
	case fraction >= 1 && i.visible:
		i.visible = false
		i.fadeTo(0)
	}
}

// Reset прячет полосу без анимации.
func (i *HeadStartIndicator) Reset() {
	i.anim.Cancel(i.id)
	i.visible = false
	i.alpha = 0
	i.Progress = 0
}

func (i *HeadStartIndicator) fadeTo(target float64) {
	i.anim.Cancel(i.id)
	i.id = i.anim.Start(i.alpha, target, headStartFade, tween.Linear, func(v float64) { i.alpha = v }, nil)
}

func (i *HeadStartIndicator) Draw(screen *ebiten.Image) {
	if i.alpha <= 0 {
		return
	}
	left := float32(1 - i.Progress)
	if left < 0 {
		left = 0
	}
	c := render.LerpColor(i.StartColor, i.EndColor, i.Progress)
	vector.DrawFilledRect(screen, i.X, i.Y, i.Width, i.Height, fade(color.RGBA{30, 30, 40, 200}, i.alpha), true)
	vector.DrawFilledRect(screen, i.X, i.Y, i.Width*left, i.Height, fade(c, i.alpha), true)
	vector.StrokeRect(screen, i.X, i.Y, i.Width, i.Height, 1, fade(color.RGBA{240, 240, 240, 255}, i.alpha), true)
}
