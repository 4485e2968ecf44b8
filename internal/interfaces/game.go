package interfaces

import "go-towerino/internal/defs"

// Game — намерения игрока и запросы, которые UI отправляет игровой сессии.
type Game interface {
	BuyTower(towerType, baseID string) bool
	SellTower(baseID string) bool
	SelectBase(baseID string)
	DeselectBase()
	PauseToggle()
	TowerData(towerType string) (defs.TowerDefinition, bool)
}
