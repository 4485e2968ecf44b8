package render

import (
	"image/color"
	"testing"
)

func TestLerpColor(t *testing.T) {
	a := color.RGBA{0, 0, 0, 255}
	b := color.RGBA{200, 100, 50, 255}
	cases := []struct {
		t    float64
		want color.RGBA
	}{
		{-1, a},
		{0, a},
		{0.5, color.RGBA{100, 50, 25, 255}},
		{1, b},
		{2, b},
	}
	for _, c := range cases {
		if got := LerpColor(a, b, c.t); got != c.want {
			t.Errorf("LerpColor(%v): expected %v, got %v", c.t, c.want, got)
		}
	}
}

func TestScaleAlphaKeepsPremultiplied(t *testing.T) {
	got := ScaleAlpha(color.RGBA{200, 100, 50, 200}, 0.5)
	want := color.RGBA{100, 50, 25, 100}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := ScaleAlpha(want, -1); got != (color.RGBA{}) {
		t.Errorf("Expected transparent, got %v", got)
	}
}

func TestDarkenAndLighten(t *testing.T) {
	c := color.RGBA{100, 200, 240, 255}
	if got := DarkenColor(c); got != (color.RGBA{50, 100, 120, 255}) {
		t.Errorf("Expected darkened color, got %v", got)
	}
	if got := LightenColor(c, 40); got != (color.RGBA{140, 240, 255, 255}) {
		t.Errorf("Expected lightened color clamped at 255, got %v", got)
	}
}
