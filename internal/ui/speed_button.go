// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-towerino/pkg/render"
)

// SpeedButton переключает множитель скорости симуляции по кругу.
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	Multipliers   []float64
	StateColors   []color.RGBA
	CurrentState  int
}

func NewSpeedButton(x, y, size float32) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		Multipliers: []float64{1, 2, 3},
		StateColors: []color.RGBA{
			{100, 180, 100, 255},
			{220, 180, 60, 255},
			{220, 90, 60, 255},
		},
	}
}

// Multiplier — текущий множитель dt.
func (b *SpeedButton) Multiplier() float64 { return b.Multipliers[b.CurrentState] }

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	s := b.Size * float32(scale)
	c := b.StateColors[b.CurrentState%len(b.StateColors)]

	height := s * 1.2
	width := s
	offset := width * 0.8
	// по треугольнику на каждую ступень скорости
	for k := 0; k <= b.CurrentState; k++ {
		dx := float32(k)*offset - float32(b.CurrentState)*offset/2
		var path vector.Path
		path.MoveTo(b.X+dx-width/2, b.Y-height/2)
		path.LineTo(b.X+dx+width/2, b.Y)
		path.LineTo(b.X+dx-width/2, b.Y+height/2)
		path.Close()
		render.FillPath(screen, &path, c)
		render.StrokePath(screen, &path, color.RGBA{255, 255, 255, 255}, 1)
	}
}

func (b *SpeedButton) IsClicked(x, y int) bool {
	dx, dy := float32(x)-b.X, float32(y)-b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(b.Multipliers)
	b.LastClickTime = time.Now()
}
