package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"go-towerino/internal/assets"
	"go-towerino/internal/config"
	"go-towerino/internal/tween"
)

// Тайминги анонса волны: появление, пауза, исчезновение.
const (
	announceFadeIn  = 0.4
	announceHold    = 1.0
	announceFadeOut = 0.6
)

// WaveIndicator отображает уровень и номер волны римскими цифрами.
type WaveIndicator struct {
	X, Y             float64
	FontSize         float64
	Color            color.RGBA
	OutlineColor     color.RGBA
	OutlineThickness int

	level, wave, waveCount int
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y, fontSize float64) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		FontSize:         fontSize,
		Color:            config.TextLightColor,
		OutlineColor:     config.TextDarkColor,
		OutlineThickness: 1,
	}
}

func (i *WaveIndicator) SetLevel(level int) {
	i.level = level
	i.wave = 0
}

func (i *WaveIndicator) SetWave(wave, count int) {
	i.wave = wave
	i.waveCount = count
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for k := 0; k < len(val); k++ {
		for num >= val[k] {
			roman.WriteString(syb[k])
			num -= val[k]
		}
	}
	return roman.String()
}

// Label — текст индикатора, пустой до первой волны.
func (i *WaveIndicator) Label() string {
	if i.wave <= 0 {
		return fmt.Sprintf("Level %d", i.level)
	}
	return fmt.Sprintf("Level %d - Wave %s/%s", i.level, toRoman(i.wave), toRoman(i.waveCount))
}

func (i *WaveIndicator) Draw(screen *ebiten.Image, fonts *assets.FontManager) {
	if i.level <= 0 {
		return
	}
	textColor := i.Color
	// последняя волна уровня подсвечивается
	if i.wave > 0 && i.wave == i.waveCount {
		textColor = color.RGBA{230, 70, 70, 255}
	}
	DrawOutlinedLabel(screen, fonts, i.Label(), i.X, i.Y, i.FontSize, textColor, i.OutlineColor, i.OutlineThickness, AlignCenter)
}

// Announcer — крупная надпись «Level N / Wave X» в начале каждой волны.
type Announcer struct {
	X, Y  float64
	anim  *tween.Animator
	id    tween.ID
	alpha float64
	level string
	wave  string
}

func NewAnnouncer(x, y float64, anim *tween.Animator) *Announcer {
	return &Announcer{X: x, Y: y, anim: anim}
}

func (a *Announcer) Alpha() float64 { return a.alpha }

// Announce перезапускает анимацию, даже если предыдущая ещё идёт.
func (a *Announcer) Announce(level, wave int) {
	a.level = fmt.Sprintf("Level %d", level)
	a.wave = "Wave " + toRoman(wave)
	a.anim.Cancel(a.id)
	set := func(v float64) { a.alpha = v }
	a.id = a.anim.Start(0, 1, announceFadeIn, tween.Linear, set, func() {
		a.id = a.anim.Start(1, 1, announceHold, tween.Linear, set, func() {
			a.id = a.anim.Start(1, 0, announceFadeOut, tween.Linear, set, nil)
		})
	})
}

func (a *Announcer) Draw(screen *ebiten.Image, fonts *assets.FontManager) {
	if a.alpha <= 0 {
		return
	}
	DrawOutlinedLabel(screen, fonts, a.level, a.X, a.Y, 28, fade(config.TextLightColor, a.alpha), fade(config.TextDarkColor, a.alpha), 2, AlignCenter)
	DrawOutlinedLabel(screen, fonts, a.wave, a.X, a.Y+36, 40, fade(config.BaseSelectColor, a.alpha), fade(config.TextDarkColor, a.alpha), 2, AlignCenter)
}
