// internal/component/visual.go
package component

import "image/color"

// Shape — статичная часть внешнего вида: цвет и радиус тела.
type Shape struct {
	Color   color.RGBA
	Radius  float32
	Outline bool // обводка контуром (башни)
}

// Visual — параметры отрисовки, которые анимирует твинер.
type Visual struct {
	Scale float64 // 0 — невидим, 1 — нормальный размер
	Flash float64 // 1 — вспышка урона, затухает к 0
	Alpha float64
}

func (v *Visual) Reset() {
	v.Scale = 0
	v.Flash = 0
	v.Alpha = 1
}
