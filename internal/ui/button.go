// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-towerino/internal/assets"
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect       image.Rectangle
	Text       string
	Caption    string // вторая строка, например цена
	TextColor  color.RGBA
	BgColor    color.RGBA
	HoverColor color.RGBA
	Disabled   bool
	FontSize   float64
}

// NewButton создает новую кнопку.
func NewButton(rect image.Rectangle, text string) *Button {
	return &Button{
		Rect:       rect,
		Text:       text,
		TextColor:  color.RGBA{20, 20, 30, 255},
		BgColor:    color.RGBA{200, 200, 200, 255},
		HoverColor: color.RGBA{150, 150, 150, 255},
		FontSize:   16,
	}
}

// Contains проверяет, попадает ли точка в кнопку.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw отрисовывает кнопку. alpha — общая прозрачность (для появления панели).
func (b *Button) Draw(screen *ebiten.Image, fonts *assets.FontManager, cursorX, cursorY int, alpha float64) {
	bg := b.BgColor
	if !b.Disabled && b.Contains(cursorX, cursorY) {
		bg = b.HoverColor
	}
	fg := b.TextColor
	if b.Disabled {
		bg = color.RGBA{90, 90, 90, 255}
		fg = color.RGBA{160, 160, 160, 255}
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, fade(bg, alpha), true)
	vector.StrokeRect(screen, x, y, w, h, 2, fade(color.RGBA{60, 60, 60, 255}, alpha), true)

	cx := float64(b.Rect.Min.X) + float64(b.Rect.Dx())/2
	if b.Caption == "" {
		_, th := MeasureLabel(fonts, b.Text, b.FontSize)
		DrawLabel(screen, fonts, b.Text, cx, float64(b.Rect.Min.Y)+(float64(b.Rect.Dy())-th)/2, b.FontSize, fade(fg, alpha), AlignCenter)
		return
	}
	top := float64(b.Rect.Min.Y) + 4
	DrawLabel(screen, fonts, b.Text, cx, top, b.FontSize, fade(fg, alpha), AlignCenter)
	DrawLabel(screen, fonts, b.Caption, cx, top+b.FontSize+2, b.FontSize*0.8, fade(fg, alpha), AlignCenter)
}
