// internal/ui/reward_popup.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"go-towerino/internal/assets"
	"go-towerino/internal/config"
)

const (
	popupLifetime = 0.9
	popupRise     = 30.0
)

type popup struct {
	text string
	pos  cp.Vector
	age  float64
}

// RewardPopups — всплывающие «+$N» над убитыми врагами и проданными башнями.
type RewardPopups struct {
	items []popup
}

func (r *RewardPopups) Add(amount int, pos cp.Vector) {
	if amount == 0 {
		return
	}
	r.items = append(r.items, popup{text: fmt.Sprintf("+$%d", amount), pos: pos})
}

func (r *RewardPopups) Len() int { return len(r.items) }

func (r *RewardPopups) Clear() { r.items = r.items[:0] }

func (r *RewardPopups) Update(deltaTime float64) {
	kept := r.items[:0]
	for _, p := range r.items {
		p.age += deltaTime
		if p.age < popupLifetime {
			kept = append(kept, p)
		}
	}
	r.items = kept
}

func (r *RewardPopups) Draw(screen *ebiten.Image, fonts *assets.FontManager) {
	for _, p := range r.items {
		k := p.age / popupLifetime
		y := p.pos.Y - popupRise*k
		DrawOutlinedLabel(screen, fonts, p.text, p.pos.X, y, 14,
			fade(color.RGBA{255, 215, 0, 255}, 1-k), fade(config.TextDarkColor, 1-k), 1, AlignCenter)
	}
}
