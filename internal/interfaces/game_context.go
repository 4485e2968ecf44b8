// internal/interfaces/game_context.go
package interfaces

import "go-towerino/internal/defs"

// LevelHost — то, что планировщик волн требует от сессии.
// Это помогает избежать циклических зависимостей.
type LevelHost interface {
	SpawnEnemy(ev defs.SpawnEvent) error
	ReleaseTowerSelection()
	LevelCleared()
	GameOver()
}
