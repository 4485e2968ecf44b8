// internal/app/game.go
package app

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"go-towerino/internal/config"
	"go-towerino/internal/defs"
	"go-towerino/internal/entity"
	"go-towerino/internal/event"
	"go-towerino/internal/pool"
	"go-towerino/internal/system"
	"go-towerino/internal/utils"
	"go-towerino/pkg/hexmap"
	"go-towerino/pkg/logger"
)

// Game — игровая сессия: кампания, деньги, базы, выбор игрока и системы симуляции.
// Создаётся один раз и передаётся явно; глобального состояния нет.
type Game struct {
	Settings        config.Settings
	Defs            *defs.Library
	EventDispatcher *event.Dispatcher
	World           *entity.World
	Map             *hexmap.Map
	Rng             *utils.Dice

	MovementSystem     *system.MovementSystem
	DestinationSystem  *system.DestinationSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	VisualEffectSystem *system.VisualEffectSystem
	WaveSystem         *system.WaveScheduler

	// Game state
	level        defs.LevelDefinition
	levelNumber  int // номер уровня кампании, с единицы
	pendingLevel int
	bases        []*entity.Base
	basesByID    map[string]*entity.Base
	selected     *entity.Base
	destination  cp.Vector
	money        int
	gameTime     float64
	isPaused     bool
	isGameOver   bool
	completed    bool

	watcher *defs.Watcher
	log     *logrus.Entry
}

// LoadLibrary читает определения из DefsDir или встроенные в бинарник.
func LoadLibrary(settings config.Settings) (*defs.Library, error) {
	if settings.DefsDir != "" {
		return defs.LoadDir(settings.DefsDir)
	}
	return defs.LoadEmbedded()
}

// NewGame собирает сессию. Уровень загружается в Start.
func NewGame(settings config.Settings, lib *defs.Library) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("app: settings: %w", err)
	}
	if len(lib.Levels) == 0 {
		return nil, fmt.Errorf("app: no levels defined")
	}
	var opts []pool.Option
	if settings.PoolCeiling > 0 {
		opts = append(opts, pool.WithCeiling(settings.PoolCeiling))
	}

	g := &Game{
		Settings:        settings,
		Defs:            lib,
		EventDispatcher: event.NewDispatcher(),
		Rng:             utils.NewDice(settings.Seed),
		basesByID:       make(map[string]*entity.Base),
		log:             logger.For("game"),
	}
	g.log.WithField("seed", g.Rng.Seed()).Debug("rng seeded")
	g.World = entity.NewWorld(lib, nil, opts...)
	g.World.Hooks = g
	g.MovementSystem = system.NewMovementSystem(g.World)
	g.CombatSystem = system.NewCombatSystem(g.World)
	g.ProjectileSystem = system.NewProjectileSystem(g.World)
	g.VisualEffectSystem = system.NewVisualEffectSystem(g.World)

	if settings.HotReload && settings.DefsDir != "" {
		w, err := defs.NewWatcher(settings.DefsDir)
		if err != nil {
			g.log.WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// Start загружает первый уровень кампании.
func (g *Game) Start() error {
	g.completed = false
	return g.loadLevel(1)
}

// Restart перезапускает текущий уровень (после поражения или из паузы).
func (g *Game) Restart() error {
	n := g.levelNumber
	if n == 0 || g.completed {
		n = 1
	}
	g.completed = false
	return g.loadLevel(n)
}

// Update — один тик симуляции. Порядок фиксирован: учёт смертей и прибытий
// заканчивается до того, как планировщик читает счётчик врагов.
func (g *Game) Update(deltaTime float64) {
	g.pollReload()
	if g.WaveSystem == nil || g.isPaused || g.completed {
		return
	}
	if g.isGameOver {
		g.World.Anim.Update(deltaTime)
		return
	}
	g.gameTime += deltaTime

	g.World.Anim.Update(deltaTime)
	g.MovementSystem.Update(deltaTime)
	g.DestinationSystem.Update()
	g.CombatSystem.Update(deltaTime)
	g.ProjectileSystem.Update(deltaTime)
	g.VisualEffectSystem.Update(deltaTime)
	g.WaveSystem.Update(deltaTime)

	if g.pendingLevel != 0 {
		n := g.pendingLevel
		g.pendingLevel = 0
		if err := g.loadLevel(n); err != nil {
			g.log.WithError(err).WithField("level", n).Error("load next level")
		}
	}
}

// Shutdown освобождает все пулы.
func (g *Game) Shutdown() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.WithError(err).Warn("close watcher")
		}
		g.watcher = nil
	}
	g.World.Clear()
	g.WaveSystem = nil
	g.log.Info("session shut down")
}

// pollReload подхватывает изменённые определения без блокировки тика.
// Новые значения действуют для сущностей, выданных после перезагрузки.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case name := <-g.watcher.Events:
		lib, err := defs.LoadDir(g.Settings.DefsDir)
		if err != nil {
			g.log.WithError(err).WithField("file", name).Warn("reload rejected, keeping previous definitions")
			return
		}
		g.Defs = lib
		g.World.Defs = lib
		g.log.WithField("file", name).Info("definitions reloaded")
	case err := <-g.watcher.Errors:
		g.log.WithError(err).Warn("watcher error")
	default:
	}
}

// --- крючки сущностей (entity.Hooks) ---

func (g *Game) RemoveEnemy() error {
	if g.WaveSystem == nil {
		return system.ErrEnemyCountUnderflow
	}
	return g.WaveSystem.RemoveEnemy()
}

// EnemyReward начисляет награду за убитого врага.
func (g *Game) EnemyReward(amount int, pos cp.Vector) {
	g.addMoney(amount)
	g.EventDispatcher.Dispatch(event.Event{Type: event.RewardGranted, Data: event.RewardData{Amount: amount, Position: pos}})
}

// EnemyHit просит аудио проиграть один из вариантов звука попадания.
func (g *Game) EnemyHit(pos cp.Vector) {
	g.EventDispatcher.Dispatch(event.Event{Type: event.EnemyHit, Data: event.HitData{
		Position: pos,
		Variant:  g.Rng.Pick(config.HitSoundVariants),
	}})
}

func (g *Game) addMoney(amount int) {
	g.money += amount
	g.EventDispatcher.Dispatch(event.Event{Type: event.MoneyChanged, Data: event.MoneyChangedData{Amount: g.money}})
}

// --- запросы для UI ---

func (g *Game) Money() int                  { return g.money }
func (g *Game) LevelNumber() int            { return g.levelNumber }
func (g *Game) Level() defs.LevelDefinition { return g.level }
func (g *Game) Bases() []*entity.Base       { return g.bases }
func (g *Game) SelectedBase() *entity.Base  { return g.selected }
func (g *Game) Destination() cp.Vector      { return g.destination }
func (g *Game) GameTime() float64           { return g.gameTime }
func (g *Game) IsPaused() bool              { return g.isPaused }
func (g *Game) IsGameOver() bool            { return g.isGameOver }
func (g *Game) IsCampaignCompleted() bool   { return g.completed }

func (g *Game) Base(id string) (*entity.Base, bool) {
	b, ok := g.basesByID[id]
	return b, ok
}

func (g *Game) Lives() int {
	if g.WaveSystem == nil {
		return 0
	}
	return g.WaveSystem.Lives()
}

// BaseAt возвращает базу под точкой экрана.
func (g *Game) BaseAt(pos cp.Vector) (*entity.Base, bool) {
	if g.Map == nil {
		return nil, false
	}
	h := g.Map.WorldToHex(pos)
	for _, b := range g.bases {
		if g.Map.WorldToHex(b.Position) == h {
			return b, true
		}
	}
	return nil, false
}
