// internal/ui/label.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"

	"go-towerino/internal/assets"
)

// Align — выравнивание подписи относительно точки привязки по X.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// DrawLabel рисует строку размера size с верхним краем в y.
func DrawLabel(dst *ebiten.Image, fonts *assets.FontManager, s string, x, y, size float64, clr color.Color, align Align) {
	face, scale := fonts.Face(size)
	bounds := text.BoundString(face, s)
	w := float64(bounds.Dx()) * scale
	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignEnd:
		x -= w
	}
	op := &ebiten.DrawImageOptions{}
	// text рисует от базовой линии; сдвигаем так, чтобы y был верхним краем
	op.GeoM.Translate(0, float64(-bounds.Min.Y))
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(dst, s, face, op)
}

// DrawOutlinedLabel — подпись с обводкой толщиной thickness пикселей.
func DrawOutlinedLabel(dst *ebiten.Image, fonts *assets.FontManager, s string, x, y, size float64, clr, outline color.Color, thickness int, align Align) {
	for dy := -thickness; dy <= thickness; dy++ {
		for dx := -thickness; dx <= thickness; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			DrawLabel(dst, fonts, s, x+float64(dx), y+float64(dy), size, outline, align)
		}
	}
	DrawLabel(dst, fonts, s, x, y, size, clr, align)
}

// MeasureLabel возвращает ширину и высоту строки размера size.
func MeasureLabel(fonts *assets.FontManager, s string, size float64) (float64, float64) {
	face, scale := fonts.Face(size)
	b := text.BoundString(face, s)
	return float64(b.Dx()) * scale, float64(b.Dy()) * scale
}

// fade возвращает цвет c с альфой, умноженной на a (0..1).
func fade(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
