// internal/defs/types.go
package defs

import (
	"fmt"
	"image/color"

	"go-towerino/pkg/hexmap"
)

// Lane — ограничение дорожки для точки спавна.
type Lane string

const (
	LanePathA Lane = "pathA"
	LanePathB Lane = "pathB"
	LaneBoth  Lane = "both"
)

// Mask converts the lane name to the map's lane bits.
func (l Lane) Mask() (hexmap.LaneMask, error) {
	switch l {
	case LanePathA:
		return hexmap.LaneA, nil
	case LanePathB:
		return hexmap.LaneB, nil
	case LaneBoth, "":
		return hexmap.LaneBoth, nil
	}
	return hexmap.LaneNone, fmt.Errorf("unknown lane %q", string(l))
}

// MotionModel — модель полёта снаряда.
type MotionModel string

const (
	MotionStraight  MotionModel = "straight"
	MotionBallistic MotionModel = "ballistic"
)

// RGBA — цвет в файлах данных: [r, g, b, a].
type RGBA [4]uint8

func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// Cell — клетка ASCII-карты уровня.
type Cell struct {
	Col int `yaml:"col" json:"col"`
	Row int `yaml:"row" json:"row"`
}
