// pkg/hexmap/map.go
package hexmap

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// LaneMask — набор дорожек, по которым разрешено идти врагу.
type LaneMask uint8

const (
	LaneNone LaneMask = 0
	LaneA    LaneMask = 1
	LaneB    LaneMask = 2
	LaneBoth          = LaneA | LaneB
)

var ErrNoRoute = errors.New("hexmap: no route")

type Tile struct {
	Lanes   LaneMask
	Blocked bool
}

// Walkable reports whether any lane passes through the tile.
func (t Tile) Walkable() bool { return t.Lanes != LaneNone }

// Map — карта дорожек уровня. Мировые координаты: пиксели, Origin — центр гекса (0,0).
type Map struct {
	Tiles   map[Hex]Tile
	Cols    int
	Rows    int
	HexSize float64
	Origin  cp.Vector
}

// Parse строит карту из ASCII-строк (odd-r):
//
//	'.' или ' ' — пустая клетка, '#' — препятствие,
//	'a' — дорожка A, 'b' — дорожка B, '*' — общая.
func Parse(rows []string, hexSize float64, origin cp.Vector) (*Map, error) {
	if len(rows) == 0 {
		return nil, errors.New("hexmap: empty map")
	}
	m := &Map{
		Tiles:   make(map[Hex]Tile),
		Rows:    len(rows),
		HexSize: hexSize,
		Origin:  origin,
	}
	for row, line := range rows {
		if len(line) > m.Cols {
			m.Cols = len(line)
		}
		for col, ch := range line {
			var tile Tile
			switch ch {
			case '.', ' ':
			case '#':
				tile.Blocked = true
			case 'a':
				tile.Lanes = LaneA
			case 'b':
				tile.Lanes = LaneB
			case '*':
				tile.Lanes = LaneBoth
			default:
				return nil, fmt.Errorf("hexmap: row %d col %d: unknown tile %q", row, col, ch)
			}
			m.Tiles[OffsetToHex(col, row)] = tile
		}
	}
	return m, nil
}

// HexToWorld возвращает центр гекса в мировых координатах.
func (m *Map) HexToWorld(h Hex) cp.Vector {
	x, y := h.ToPixel(m.HexSize)
	return m.Origin.Add(cp.Vector{X: x, Y: y})
}

func (m *Map) WorldToHex(v cp.Vector) Hex {
	return PixelToHex(v.X-m.Origin.X, v.Y-m.Origin.Y, m.HexSize)
}

// CellToWorld — центр клетки ASCII-карты.
func (m *Map) CellToWorld(col, row int) cp.Vector {
	return m.HexToWorld(OffsetToHex(col, row))
}

// IsPassable reports whether h carries one of the given lanes.
func (m *Map) IsPassable(h Hex, lanes LaneMask) bool {
	t, ok := m.Tiles[h]
	return ok && t.Lanes&lanes != 0
}

// Route строит маршрут из from в to только по клеткам с дорожками lanes.
// Первая точка маршрута — следующий гекс после стартового, последняя — ровно to.
func (m *Map) Route(from, to cp.Vector, lanes LaneMask) ([]cp.Vector, error) {
	start, goal := m.WorldToHex(from), m.WorldToHex(to)
	if !m.IsPassable(start, lanes) {
		return nil, fmt.Errorf("%w: start %v is off lanes %b", ErrNoRoute, start, lanes)
	}
	if !m.IsPassable(goal, lanes) {
		return nil, fmt.Errorf("%w: goal %v is off lanes %b", ErrNoRoute, goal, lanes)
	}
	path := shortestPath(m, start, goal, lanes)
	if path == nil {
		return nil, fmt.Errorf("%w: %v -> %v on lanes %b", ErrNoRoute, start, goal, lanes)
	}
	points := make([]cp.Vector, 0, len(path))
	for _, h := range path[1:] {
		points = append(points, m.HexToWorld(h))
	}
	if len(points) == 0 {
		points = append(points, to)
	} else {
		points[len(points)-1] = to
	}
	return points, nil
}
