// internal/utils/math.go
package utils

import "math"

// WrapAngle приводит угол к [-π, π].
func WrapAngle(a float32) float32 {
	return float32(math.Remainder(float64(a), 2*math.Pi))
}

// AngleDelta — знаковый поворот от from к to по короткой дуге.
func AngleDelta(from, to float32) float32 {
	return WrapAngle(to - from)
}

// LerpAngle двигает from к to на долю t, не проходя через длинную дугу.
func LerpAngle(from, to, t float32) float32 {
	return WrapAngle(from + AngleDelta(from, to)*t)
}
