package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-towerino/pkg/hexmap"
)

// HexRenderer рисует статичную карту дорожек уровня. Карта предрендерится
// в mapImage один раз; на кадре остаётся один DrawImage и подсветки.
type HexRenderer struct {
	hexMap      *hexmap.Map
	colors      MapColors
	entries     map[hexmap.Hex]struct{}
	exit        hexmap.Hex
	sortedHexes []hexmap.Hex
	corners     [6][2]float64
	mapImage    *ebiten.Image
}

func NewHexRenderer(hexMap *hexmap.Map, colors MapColors, entries []hexmap.Hex, exit hexmap.Hex, screenWidth, screenHeight int) *HexRenderer {
	hexes := make([]hexmap.Hex, 0, len(hexMap.Tiles))
	for hex := range hexMap.Tiles {
		hexes = append(hexes, hex)
	}
	// порядок обхода map случаен, а перекрытие обводок зависит от порядка
	sort.Slice(hexes, func(i, j int) bool {
		if hexes[i].R != hexes[j].R {
			return hexes[i].R < hexes[j].R
		}
		return hexes[i].Q < hexes[j].Q
	})

	set := make(map[hexmap.Hex]struct{}, len(entries))
	for _, h := range entries {
		set[h] = struct{}{}
	}

	r := &HexRenderer{
		hexMap:      hexMap,
		colors:      colors,
		entries:     set,
		exit:        exit,
		sortedHexes: hexes,
		corners:     hexmap.Corners(hexMap.HexSize),
		mapImage:    ebiten.NewImage(screenWidth, screenHeight),
	}
	r.RenderMapImage()
	return r
}

// RenderMapImage создаёт предрендеренное изображение задника
func (r *HexRenderer) RenderMapImage() {
	r.mapImage.Fill(r.colors.BackgroundColor)
	for _, hex := range r.sortedHexes {
		fill := r.fillColor(hex)
		path := r.hexPath(hex, 0)
		FillPath(r.mapImage, path, fill)
		StrokePath(r.mapImage, path, LightenColor(fill, 40), r.colors.StrokeWidth)
	}
}

func (r *HexRenderer) fillColor(hex hexmap.Hex) color.RGBA {
	if _, ok := r.entries[hex]; ok {
		return r.colors.EntryColor
	}
	if hex == r.exit {
		return r.colors.ExitColor
	}
	tile := r.hexMap.Tiles[hex]
	switch {
	case tile.Blocked:
		return r.colors.BlockedColor
	case tile.Lanes == hexmap.LaneBoth:
		return r.colors.LaneBothColor
	case tile.Lanes == hexmap.LaneA:
		return r.colors.LaneAColor
	case tile.Lanes == hexmap.LaneB:
		return r.colors.LaneBColor
	}
	return r.colors.GroundColor
}

func (r *HexRenderer) Draw(screen *ebiten.Image) {
	screen.DrawImage(r.mapImage, nil)
}

// DrawHighlight обводит гекс поверх карты (базы, выбранная база).
func (r *HexRenderer) DrawHighlight(screen *ebiten.Image, hex hexmap.Hex, clr color.RGBA, width float32, inset float64) {
	StrokePath(screen, r.hexPath(hex, inset), clr, width)
}

func (r *HexRenderer) hexPath(hex hexmap.Hex, inset float64) *vector.Path {
	c := r.hexMap.HexToWorld(hex)
	k := 1.0
	if r.hexMap.HexSize > 0 {
		k = (r.hexMap.HexSize - inset) / r.hexMap.HexSize
	}
	path := &vector.Path{}
	for i, v := range r.corners {
		px := float32(c.X + v[0]*k)
		py := float32(c.Y + v[1]*k)
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()
	return path
}
