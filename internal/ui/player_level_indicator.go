// internal/ui/player_level_indicator.go
package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-towerino/internal/assets"
	"go-towerino/internal/config"
)

// MoneyIndicator показывает деньги игрока и «подпрыгивает» при изменении.
type MoneyIndicator struct {
	X, Y       float64
	FontSize   float64
	Amount     int
	lastChange time.Time
}

func NewMoneyIndicator(x, y, fontSize float64) *MoneyIndicator {
	return &MoneyIndicator{X: x, Y: y, FontSize: fontSize}
}

func (m *MoneyIndicator) Set(amount int) {
	if amount != m.Amount {
		m.lastChange = time.Now()
	}
	m.Amount = amount
}

func (m *MoneyIndicator) Draw(screen *ebiten.Image, fonts *assets.FontManager) {
	elapsed := time.Since(m.lastChange).Seconds()
	size := m.FontSize * (1 + 0.25*math.Exp(-elapsed*8))
	DrawOutlinedLabel(screen, fonts, fmt.Sprintf("$%d", m.Amount), m.X, m.Y, size,
		color.RGBA{255, 215, 0, 255}, config.TextDarkColor, 1, AlignStart)
}
