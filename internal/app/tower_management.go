// internal/app/tower_management.go
package app

import (
	"github.com/sirupsen/logrus"

	"go-towerino/internal/defs"
	"go-towerino/internal/event"
)

// TowerData returns the definition for a tower type. Unknown types are absent; callers refuse the action.
func (g *Game) TowerData(towerType string) (defs.TowerDefinition, bool) {
	return g.Defs.Tower(towerType)
}

// BuyTower ставит башню на свободную базу. Любой отказ ничего не меняет и не шлёт событий.
func (g *Game) BuyTower(towerType, baseID string) bool {
	if !g.canAct() {
		return false
	}
	def, ok := g.TowerData(towerType)
	if !ok {
		return false
	}
	base, ok := g.basesByID[baseID]
	if !ok || base.HasTower() || g.money < def.BuyPrice {
		return false
	}

	tower, err := g.World.Towers.Acquire(def.Archetype())
	if err != nil {
		g.log.WithError(err).WithField("tower", def.ID).Error("acquire tower")
		return false
	}
	if err := tower.TurnOn(base); err != nil {
		g.log.WithError(err).WithField("tower", def.ID).Error("turn on tower")
		if rerr := g.World.Towers.Release(tower); rerr != nil {
			g.log.WithError(rerr).Error("release tower")
		}
		return false
	}
	base.SetTower(tower, def.ID)

	g.addMoney(-def.BuyPrice)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: event.BaseData{BaseID: base.ID, TowerType: def.ID}})
	g.log.WithFields(logrus.Fields{"tower": def.ID, "base": base.ID, "money": g.money}).Info("tower bought")
	g.DeselectBase()
	return true
}

// SellTower снимает башню с базы и возвращает цену продажи. Пустая база — ничего не делает.
func (g *Game) SellTower(baseID string) bool {
	if !g.canAct() {
		return false
	}
	base, ok := g.basesByID[baseID]
	if !ok || !base.HasTower() {
		return false
	}
	towerType := base.TowerType()
	def, _ := g.TowerData(towerType)

	base.Tower().TurnOff(false) // башня сама освобождает базу

	g.addMoney(def.SellPrice)
	g.EventDispatcher.Dispatch(event.Event{Type: event.RewardGranted, Data: event.RewardData{Amount: def.SellPrice, Position: base.HUDPosition()}})
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerRemoved, Data: event.BaseData{BaseID: base.ID, TowerType: towerType}})
	g.log.WithFields(logrus.Fields{"tower": towerType, "base": base.ID, "money": g.money}).Info("tower sold")
	g.DeselectBase()
	return true
}

// SelectBase выделяет базу; предыдущее выделение снимается.
func (g *Game) SelectBase(baseID string) {
	base, ok := g.basesByID[baseID]
	if !ok || base == g.selected {
		return
	}
	g.DeselectBase()
	base.Select()
	g.selected = base
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerSelected, Data: event.BaseData{BaseID: base.ID, TowerType: base.TowerType()}})
}

func (g *Game) DeselectBase() {
	if g.selected == nil {
		return
	}
	base := g.selected
	base.Deselect()
	g.selected = nil
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerDeselected, Data: event.BaseData{BaseID: base.ID, TowerType: base.TowerType()}})
}

// ReleaseTowerSelection вызывается планировщиком, когда волна зачищена.
func (g *Game) ReleaseTowerSelection() { g.DeselectBase() }

func (g *Game) PauseToggle() {
	g.isPaused = !g.isPaused
	g.EventDispatcher.Dispatch(event.Event{Type: event.PauseChanged, Data: event.PauseData{Paused: g.isPaused}})
	g.log.WithField("paused", g.isPaused).Debug("pause toggled")
}

func (g *Game) canAct() bool {
	return g.WaveSystem != nil && !g.isGameOver && !g.completed && !g.isPaused
}
