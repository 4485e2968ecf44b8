// pkg/hexmap/hex.go
package hexmap

import (
	"math"

	"go-towerino/pkg/utils"
)

var Sqrt3 = math.Sqrt(3)

// Hex представляет гекс в осевых координатах (Q, R)
type Hex struct {
	Q, R int
}

// OffsetToHex переводит координаты строки ASCII-карты (odd-r) в осевые.
func OffsetToHex(col, row int) Hex {
	return Hex{Q: col - (row-(row&1))/2, R: row}
}

// ToOffset — обратное преобразование к OffsetToHex.
func (h Hex) ToOffset() (col, row int) {
	return h.Q + (h.R-(h.R&1))/2, h.R
}

// ToPixel конвертирует гекс в пиксельные координаты (pointy top ориентация)
func (h Hex) ToPixel(hexSize float64) (x, y float64) {
	x = hexSize * (Sqrt3*float64(h.Q) + Sqrt3/2*float64(h.R))
	y = hexSize * (3.0 / 2.0 * float64(h.R))
	return
}

// PixelToHex конвертирует пиксельные координаты (относительно центра гекса 0,0) в гекс
func PixelToHex(x, y, hexSize float64) Hex {
	q := (Sqrt3/3*x - 1.0/3*y) / hexSize
	r := (2.0 / 3 * y) / hexSize
	return RoundHex(q, r)
}

// RoundHex округляет дробные осевые координаты до ближайшего гекса.
// Округляем все три кубические оси и пересчитываем ту, что ушла дальше
// всего, иначе q+r+s != 0.
func RoundHex(q, r float64) Hex {
	s := -q - r
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return Hex{Q: int(rq), R: int(rr)}
}

// Neighbors возвращает существующих соседей гекса
func (h Hex) Neighbors(m *Map) []Hex {
	valid := make([]Hex, 0, 6)
	for _, n := range h.AllPossibleNeighbors() {
		if _, exists := m.Tiles[n]; exists {
			valid = append(valid, n)
		}
	}
	return valid
}

// AllPossibleNeighbors возвращает всех возможных соседей гекса
func (h Hex) AllPossibleNeighbors() []Hex {
	return []Hex{
		{h.Q + 1, h.R},
		{h.Q + 1, h.R - 1},
		{h.Q, h.R - 1},
		{h.Q - 1, h.R},
		{h.Q - 1, h.R + 1},
		{h.Q, h.R + 1},
	}
}

// Distance вычисляет расстояние между гексами
func (h Hex) Distance(to Hex) int {
	dq := h.Q - to.Q
	dr := h.R - to.R
	return (utils.Abs(dq) + utils.Abs(dr) + utils.Abs(dq+dr)) / 2
}

// Corners возвращает шесть вершин гекса в пикселях относительно его центра.
func Corners(hexSize float64) [6][2]float64 {
	var out [6][2]float64
	for i := 0; i < 6; i++ {
		angle := math.Pi / 180 * float64(60*i-30)
		out[i] = [2]float64{hexSize * math.Cos(angle), hexSize * math.Sin(angle)}
	}
	return out
}
