// internal/app/level.go
package app

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"go-towerino/internal/config"
	"go-towerino/internal/defs"
	"go-towerino/internal/entity"
	"go-towerino/internal/event"
	"go-towerino/internal/system"
	"go-towerino/pkg/hexmap"
)

// loadLevel выключает всё, что осталось от прошлого уровня, и собирает новый.
func (g *Game) loadLevel(number int) error {
	level, ok := g.Defs.Level(number)
	if !ok {
		return fmt.Errorf("app: level %d: %w", number, defs.ErrNotFound)
	}
	m, err := level.BuildMap(config.HexSize, mapOrigin(level))
	if err != nil {
		return fmt.Errorf("app: level %d: %w", number, err)
	}

	g.DeselectBase()
	g.World.ResetAll()

	g.level = level
	g.levelNumber = number
	g.Map = m
	g.World.Nav = m
	g.isGameOver = false
	g.isPaused = false
	g.gameTime = 0

	g.bases = g.bases[:0]
	g.basesByID = make(map[string]*entity.Base, len(level.Bases))
	for _, bd := range level.Bases {
		b := entity.NewBase(bd, m.CellToWorld(bd.Col, bd.Row))
		g.bases = append(g.bases, b)
		g.basesByID[b.ID] = b
	}
	g.destination = m.CellToWorld(level.Destination.Col, level.Destination.Row)

	g.WaveSystem = system.NewWaveScheduler(number, level, g.Settings, g, g.EventDispatcher)
	g.DestinationSystem = system.NewDestinationSystem(g.World, g.destination, config.DestinationRadius, g.WaveSystem)

	g.money = 0
	g.addMoney(level.StartMoney)
	g.EventDispatcher.Dispatch(event.Event{Type: event.LightingChanged, Data: level.Lighting})
	g.EventDispatcher.Dispatch(event.Event{Type: event.LevelLoaded, Data: event.LevelData{LevelIndex: number, Name: level.Name}})
	g.log.WithFields(logrus.Fields{"level": number, "name": level.Name, "money": level.StartMoney}).Info("level loaded")

	g.WaveSystem.Start()
	return nil
}

// mapOrigin центрирует карту уровня на экране.
func mapOrigin(level defs.LevelDefinition) cp.Vector {
	cols := 0
	for _, row := range level.Map {
		if len(row) > cols {
			cols = len(row)
		}
	}
	rows := len(level.Map)
	w := hexmap.Sqrt3 * config.HexSize * (float64(cols) + 0.5)
	h := config.HexSize * (1.5*float64(rows-1) + 2)
	return cp.Vector{
		X: (config.ScreenWidth-w)/2 + hexmap.Sqrt3*config.HexSize/2,
		Y: (config.ScreenHeight-h)/2 + config.HexSize,
	}
}

// --- interfaces.LevelHost ---

// SpawnEnemy берёт врага из пула и выпускает его из точки спавна к цели уровня.
func (g *Game) SpawnEnemy(ev defs.SpawnEvent) error {
	sp, ok := g.level.SpawnPoint(ev.SpawnPoint)
	if !ok {
		return fmt.Errorf("app: spawn point %q: %w", ev.SpawnPoint, defs.ErrNotFound)
	}
	lanes, err := ev.Lane.Mask()
	if err != nil {
		return fmt.Errorf("app: spawn %q: %w", ev.Archetype, err)
	}
	e, err := g.World.Enemies.Acquire(ev.Archetype)
	if err != nil {
		return err
	}
	pos := g.Map.CellToWorld(sp.Col, sp.Row)
	if err := e.TurnOn(pos, g.destination, lanes); err != nil {
		e.TurnOff(true)
		return err
	}
	return nil
}

// LevelCleared переходит к следующему уровню в конце тика; после последнего — финал кампании.
func (g *Game) LevelCleared() {
	g.EventDispatcher.Dispatch(event.Event{Type: event.LevelCleared, Data: event.LevelData{LevelIndex: g.levelNumber, Name: g.level.Name}})
	next := g.levelNumber + 1
	if next > len(g.Defs.Levels) {
		g.completed = true
		g.levelNumber = 1
		g.World.ResetAll()
		g.EventDispatcher.Dispatch(event.Event{Type: event.CampaignCompleted})
		g.log.Info("campaign completed")
		return
	}
	g.pendingLevel = next
}

func (g *Game) GameOver() {
	g.isGameOver = true
	g.DeselectBase()
	g.EventDispatcher.Dispatch(event.Event{Type: event.GameOver, Data: event.LevelData{LevelIndex: g.levelNumber, Name: g.level.Name}})
}
