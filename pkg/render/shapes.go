// pkg/render/shapes.go
package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white — текстура 1x1 для DrawTriangles; создаётся при первой отрисовке.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// FillPath заливает замкнутый путь цветом clr.
func FillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	paint(vs, clr)
	dst.DrawTriangles(vs, is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// StrokePath обводит путь линией ширины width.
func StrokePath(dst *ebiten.Image, path *vector.Path, clr color.RGBA, width float32) {
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: width})
	paint(vs, clr)
	dst.DrawTriangles(vs, is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// StrokeArc рисует дугу окружности от угла 0 (вверх) на долю fraction по часовой стрелке.
func StrokeArc(dst *ebiten.Image, cx, cy, r float32, fraction float64, clr color.RGBA, width float32) {
	if fraction <= 0 {
		return
	}
	if fraction > 1 {
		fraction = 1
	}
	var path vector.Path
	start := float32(-math.Pi / 2)
	end := start + float32(2*math.Pi*fraction)
	path.Arc(cx, cy, r, start, end, vector.Clockwise)
	StrokePath(dst, &path, clr, width)
}

// FillEllipse — эллипс с полуосями rx, ry (тени снарядов).
func FillEllipse(dst *ebiten.Image, cx, cy, rx, ry float32, clr color.RGBA) {
	var path vector.Path
	const segments = 16
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		x := cx + rx*float32(math.Cos(a))
		y := cy + ry*float32(math.Sin(a))
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	FillPath(dst, &path, clr)
}

func paint(vs []ebiten.Vertex, clr color.RGBA) {
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
}
