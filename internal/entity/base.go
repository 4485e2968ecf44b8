// internal/entity/base.go
package entity

import (
	"github.com/jakecoffman/cp"

	"go-towerino/internal/defs"
)

// Base — площадка под башню. На базе стоит не больше одной башни.
type Base struct {
	ID       string
	Cell     defs.Cell
	Position cp.Vector
	Selected bool

	tower     *Tower
	towerType string
}

func NewBase(def defs.BaseDefinition, pos cp.Vector) *Base {
	return &Base{ID: def.ID, Cell: def.Cell, Position: pos}
}

func (b *Base) HasTower() bool    { return b.tower != nil }
func (b *Base) Tower() *Tower     { return b.tower }
func (b *Base) TowerType() string { return b.towerType }

func (b *Base) SetTower(t *Tower, towerType string) {
	b.tower = t
	b.towerType = towerType
}

func (b *Base) UnsetTower() {
	b.tower = nil
	b.towerType = ""
}

func (b *Base) Select()   { b.Selected = true }
func (b *Base) Deselect() { b.Selected = false }

// HUDPosition — где рисовать меню покупки/продажи.
func (b *Base) HUDPosition() cp.Vector {
	return b.Position.Add(cp.Vector{Y: -40})
}
