// internal/event/types.go
package event

import "github.com/jakecoffman/cp"

const (
	MoneyChanged        EventType = "MoneyChanged"        // MoneyChangedData
	HealthChanged       EventType = "HealthChanged"       // HealthChangedData
	WaveProgressChanged EventType = "WaveProgressChanged" // WaveData
	WaveAnnouncer       EventType = "WaveAnnouncer"       // WaveData
	HeadStartProgress   EventType = "HeadStartProgress"   // HeadStartData
	EnemySpawned        EventType = "EnemySpawned"        // EnemyData
	EnemyRemoved        EventType = "EnemyRemoved"        // EnemyData
	TowerSelected       EventType = "TowerSelected"       // BaseData
	TowerDeselected     EventType = "TowerDeselected"     // BaseData
	TowerPlaced         EventType = "TowerPlaced"         // BaseData
	TowerRemoved        EventType = "TowerRemoved"        // BaseData
	RewardGranted       EventType = "RewardGranted"       // RewardData
	LevelLoaded         EventType = "LevelLoaded"         // LevelData
	LevelCleared        EventType = "LevelCleared"        // LevelData
	CampaignCompleted   EventType = "CampaignCompleted"   // без данных
	GameOver            EventType = "GameOver"            // LevelData
	PauseChanged        EventType = "PauseChanged"        // PauseData
	LightingChanged     EventType = "LightingChanged"     // defs.Lighting
	EnemyHit            EventType = "EnemyHit"            // HitData, для аудио
)

type MoneyChangedData struct {
	Amount int
}

type HealthChangedData struct {
	Lives int
	Max   int
}

type WaveData struct {
	LevelIndex int
	WaveIndex  int // с единицы
	WaveCount  int
}

type HeadStartData struct {
	Fraction float64 // 0 → 1
}

type EnemyData struct {
	Archetype string
	Position  cp.Vector
	Active    int // активных врагов после события
	Killed    bool
}

type BaseData struct {
	BaseID    string
	TowerType string
}

type RewardData struct {
	Amount   int
	Position cp.Vector
}

type LevelData struct {
	LevelIndex int
	Name       string
}

type PauseData struct {
	Paused bool
}

type HitData struct {
	Position cp.Vector
	Variant  int
}
