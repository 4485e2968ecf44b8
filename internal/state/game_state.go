// internal/state/game_state.go
package state

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"go-towerino/internal/app"
	"go-towerino/internal/assets"
	"go-towerino/internal/config"
	"go-towerino/internal/defs"
	"go-towerino/internal/event"
	"go-towerino/internal/interfaces"
	"go-towerino/internal/system"
	"go-towerino/internal/ui"
	"go-towerino/pkg/hexmap"
	"go-towerino/pkg/logger"
	"go-towerino/pkg/render"
)

var _ GameInterface = (*GameState)(nil)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// GameState — состояние игры: переводит ввод в намерения сессии и рисует её.
type GameState struct {
	sm           *StateMachine
	game         *app.Game
	fonts        *assets.FontManager
	renderer     *render.HexRenderer
	renderSystem *system.RenderSystem
	hud          *ui.HUD
	panel        *ui.BuySellPanel
	towerKeys    map[ebiten.Key]string
	listeners    []subscription
	started      bool
	finished     bool
	Debug        bool
	log          *logrus.Entry
}

type subscription struct {
	t event.EventType
	l *event.FuncListener
}

func NewGameState(sm *StateMachine, g *app.Game, fonts *assets.FontManager) *GameState {
	towers := make([]defs.TowerDefinition, 0, len(g.Defs.TowerOrder))
	for _, id := range g.Defs.TowerOrder {
		towers = append(towers, g.Defs.Towers[id])
	}

	gs := &GameState{
		sm:           sm,
		game:         g,
		fonts:        fonts,
		renderSystem: system.NewRenderSystem(g.World),
		hud:          ui.NewHUD(fonts, g.EventDispatcher),
		panel:        ui.NewBuySellPanel(fonts, towers),
		towerKeys:    towerHotkeys(towers),
		log:          logger.Log.WithField("component", "game_state"),
	}
	gs.subscribe()
	return gs
}

// towerHotkeys: цифра из поля hotkey, иначе порядковый номер башни.
func towerHotkeys(towers []defs.TowerDefinition) map[ebiten.Key]string {
	keys := make(map[ebiten.Key]string, len(towers))
	for k, def := range towers {
		n := k + 1
		if h := strings.TrimSpace(def.Hotkey); len(h) == 1 && h[0] >= '1' && h[0] <= '9' {
			n = int(h[0] - '0')
		}
		if n <= len(digitKeys) {
			keys[digitKeys[n-1]] = def.ID
		}
	}
	return keys
}

func (g *GameState) on(t event.EventType, fn func(event.Event)) {
	g.listeners = append(g.listeners, subscription{t: t, l: g.game.EventDispatcher.SubscribeFunc(t, fn)})
}

func (g *GameState) subscribe() {
	g.on(event.LevelLoaded, func(event.Event) { g.rebuildMap() })
	g.on(event.TowerSelected, func(e event.Event) {
		if d, ok := e.Data.(event.BaseData); ok {
			g.openPanel(d)
		}
	})
	g.on(event.TowerDeselected, func(event.Event) { g.panel.Hide() })
	g.on(event.MoneyChanged, func(e event.Event) {
		if d, ok := e.Data.(event.MoneyChangedData); ok {
			g.panel.SetMoney(d.Amount)
		}
	})
	g.on(event.CampaignCompleted, func(event.Event) { g.finished = true })
}

// Close снимает подписки; вызывается при завершении приложения.
func (g *GameState) Close() {
	for _, s := range g.listeners {
		g.game.EventDispatcher.Unsubscribe(s.t, s.l)
	}
	g.listeners = nil
	g.hud.Close()
}

func (g *GameState) openPanel(d event.BaseData) {
	if d.TowerType == "" {
		g.panel.ShowBuy(d.BaseID)
		return
	}
	if def, ok := g.game.TowerData(d.TowerType); ok {
		g.panel.ShowSell(d.BaseID, def)
	}
}

func (g *GameState) rebuildMap() {
	m := g.game.Map
	if m == nil {
		return
	}
	level := g.game.Level()
	entries := make([]hexmap.Hex, 0, len(level.SpawnPoints))
	for _, sp := range level.SpawnPoints {
		entries = append(entries, hexmap.OffsetToHex(sp.Col, sp.Row))
	}
	exit := hexmap.OffsetToHex(level.Destination.Col, level.Destination.Row)
	colors := render.MapColors{
		BackgroundColor: config.BackgroundColor,
		GroundColor:     config.GroundColor,
		BlockedColor:    config.BlockedColor,
		LaneAColor:      config.LaneAColor,
		LaneBColor:      config.LaneBColor,
		LaneBothColor:   config.LaneBothColor,
		EntryColor:      config.EntryColor,
		ExitColor:       config.ExitColor,
		StrokeWidth:     float32(config.StrokeWidth),
	}
	g.renderer = render.NewHexRenderer(m, colors, entries, exit, config.ScreenWidth, config.ScreenHeight)
}

func (g *GameState) Enter() {
	if g.started {
		return
	}
	g.started = true
	if err := g.game.Start(); err != nil {
		g.log.WithError(err).Error("start campaign")
	}
}

// restart перезапускает текущий уровень (или кампанию после финала).
func (g *GameState) restart() {
	g.finished = false
	if g.game.IsPaused() {
		g.game.PauseToggle()
	}
	if err := g.game.Restart(); err != nil {
		g.log.WithError(err).Error("restart")
	}
}

func (g *GameState) GetGame() interfaces.Game { return g.game }

func (g *GameState) PauseButtonHit(x, y int) bool { return g.hud.Pause.IsClicked(x, y) }

func (g *GameState) Update(deltaTime float64) {
	g.panel.Update()
	g.hud.Update(deltaTime)

	if g.handleKeys() {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if g.isClickOnUI(x, y) {
			if g.handleUIClick(x, y) {
				return
			}
		} else {
			g.handleGameClick(x, y)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.game.DeselectBase()
	}

	steps := int(g.hud.Speed.Multiplier())
	for k := 0; k < steps; k++ {
		g.game.Update(deltaTime)
	}
	if g.finished {
		g.sm.SetState(NewEndingState(g.sm, g, g.fonts))
	}
}

// handleKeys возвращает true, если состояние сменилось и кадр надо закончить.
func (g *GameState) handleKeys() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.pause()
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
		return false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.game.DeselectBase()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.hud.Speed.ToggleState()
	}
	selected := g.game.SelectedBase()
	if selected == nil {
		return false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.game.SellTower(selected.ID)
	}
	for key, towerType := range g.towerKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.game.BuyTower(towerType, selected.ID)
			break
		}
	}
	return false
}

func (g *GameState) pause() {
	if g.game.IsGameOver() {
		return
	}
	g.game.PauseToggle()
	g.sm.SetState(NewPauseState(g.sm, g, g.fonts))
}

// isClickOnUI проверяет, был ли клик по какому-либо элементу UI
func (g *GameState) isClickOnUI(x, y int) bool {
	return g.hud.Pause.IsClicked(x, y) || g.hud.Speed.IsClicked(x, y) || g.panel.Contains(x, y)
}

// handleUIClick обрабатывает клики, которые точно попали в UI.
// Возвращает true, если игра ушла на паузу.
func (g *GameState) handleUIClick(x, y int) bool {
	switch {
	case g.hud.Pause.IsClicked(x, y):
		g.pause()
		return true
	case g.hud.Speed.IsClicked(x, y):
		g.hud.Speed.ToggleState()
	default:
		action, towerType := g.panel.HandleClick(x, y)
		baseID := g.panel.BaseID
		switch action {
		case ui.ActionBuy:
			g.game.BuyTower(towerType, baseID)
		case ui.ActionSell:
			g.game.SellTower(baseID)
		}
	}
	return false
}

func (g *GameState) handleGameClick(x, y int) {
	if b, ok := g.game.BaseAt(cp.Vector{X: float64(x), Y: float64(y)}); ok {
		g.game.SelectBase(b.ID)
		return
	}
	g.game.DeselectBase()
}

func (g *GameState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	if g.renderer != nil {
		g.renderer.Draw(screen)
		g.drawBases(screen)
	}
	g.renderSystem.Draw(screen, g.game.GameTime())
	g.hud.Draw(screen)
	g.panel.Draw(screen)

	if g.game.IsGameOver() {
		vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{40, 0, 0, 140}, false)
		ui.DrawOutlinedLabel(screen, g.fonts, "DEFEAT", config.ScreenWidth/2, config.ScreenHeight/2-30, 48,
			color.RGBA{230, 60, 40, 255}, config.TextDarkColor, 2, ui.AlignCenter)
		ui.DrawLabel(screen, g.fonts, "Press R to retry", config.ScreenWidth/2, config.ScreenHeight/2+30, 16,
			config.TextLightColor, ui.AlignCenter)
	}
	if g.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  enemies %d  towers %d  projectiles %d",
			ebiten.ActualTPS(), g.game.World.Enemies.ActiveCount(), g.game.World.Towers.ActiveCount(),
			g.game.World.Projectiles.ActiveCount()), 10, config.ScreenHeight-20)
	}
}

// drawBases обводит базы; у выбранной базы с башней показывается радиус атаки.
func (g *GameState) drawBases(screen *ebiten.Image) {
	for _, b := range g.game.Bases() {
		hex := g.game.Map.WorldToHex(b.Position)
		clr := config.BaseColor
		if b.Selected {
			clr = config.BaseSelectColor
		}
		g.renderer.DrawHighlight(screen, hex, clr, 3, 3)
		if !b.Selected || !b.HasTower() {
			continue
		}
		def := b.Tower().Definition()
		vector.StrokeCircle(screen, float32(b.Position.X), float32(b.Position.Y), float32(def.AttackRange), 1,
			render.ScaleAlpha(config.BaseSelectColor, 0.6), true)
	}
}

func (g *GameState) Exit() {}
