// pkg/render/color.go
package render

import "image/color"

// MapColors holds all the color definitions needed to render the static map background.
type MapColors struct {
	BackgroundColor color.RGBA
	GroundColor     color.RGBA
	BlockedColor    color.RGBA
	LaneAColor      color.RGBA
	LaneBColor      color.RGBA
	LaneBothColor   color.RGBA
	EntryColor      color.RGBA
	ExitColor       color.RGBA
	StrokeWidth     float32
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor сдвигает каналы к белому на d.
func LightenColor(c color.RGBA, d int) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, int(c.R)+d)),
		G: uint8(min(255, int(c.G)+d)),
		B: uint8(min(255, int(c.B)+d)),
		A: 255,
	}
}

// LerpColor смешивает a и b в пропорции t (0 — a, 1 — b).
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// ScaleAlpha умножает все каналы (цвет premultiplied) на a.
func ScaleAlpha(c color.RGBA, a float64) color.RGBA {
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
