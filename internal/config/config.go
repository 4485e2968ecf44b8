// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	HexSize      = 24.0
	MaxDeltaTime = 0.06 // кламп кадра, чтобы таймеры не «перепрыгивали» после паузы окна

	// Таймлайн уровня (значения по умолчанию для Settings)
	HeadStartDuration   = 3.0
	WaveEndWaitDuration = 2.0
	LevelIntroDelay     = 0.75
	StartingLives       = 3

	// Высоты в мировых единицах (пиксели над плоскостью карты)
	EnemyHeight       = 24.0
	EnemyCenterHeight = EnemyHeight / 2
	TowerAnchorHeight = 36.0
	Gravity           = 600.0

	// Снаряды
	ProjectileAutoKill     = 5.0
	ProjectileReadyTween   = 0.25
	ProjectileTurnOffTween = 0.15
	FireAheadMultiplier    = 0.5

	// Башни
	TowerScaleTween = 0.3
	TowerIdleSpin   = 0.6 // рад/с
	TowerAimSpeed   = 8.0

	// Враги
	EnemyRadius          = 9.0
	EnemyReachedDuration = 0.33
	EnemyDeathDuration   = 1.0
	EnemyFlashDuration   = 0.12
	DestinationRadius    = HexSize * 0.6

	HitSoundVariants = 3

	TextOffsetY = 4
	StrokeWidth = 2.0
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	GroundColor      = color.RGBA{32, 36, 46, 255}
	BlockedColor     = color.RGBA{45, 50, 60, 255}
	LaneAColor       = color.RGBA{70, 100, 120, 220}
	LaneBColor       = color.RGBA{110, 90, 130, 220}
	LaneBothColor    = color.RGBA{90, 110, 100, 220}
	EntryColor       = color.RGBA{0, 255, 0, 255}
	ExitColor        = color.RGBA{255, 0, 0, 255}
	BaseColor        = color.RGBA{50, 205, 50, 255}
	BaseSelectColor  = color.RGBA{255, 215, 0, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TextDarkColor    = color.RGBA{20, 20, 30, 255}
	TowerStrokeColor = color.RGBA{255, 255, 255, 255}
	HealthBarBack    = color.RGBA{60, 20, 20, 220}
	HealthBarFront   = color.RGBA{80, 220, 80, 255}
	ImpactColor      = color.RGBA{255, 160, 40, 200}
	FlashColor       = color.RGBA{255, 255, 255, 255}
)
