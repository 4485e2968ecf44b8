// internal/state/menu_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-towerino/internal/assets"
	"go-towerino/internal/config"
	"go-towerino/internal/ui"
)

// MenuState — заставка перед игрой.
type MenuState struct {
	sm    *StateMachine
	next  State
	fonts *assets.FontManager
}

func NewMenuState(sm *StateMachine, next State, fonts *assets.FontManager) *MenuState {
	return &MenuState{sm: sm, next: next, fonts: fonts}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.sm.SetState(m.next)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	ui.DrawOutlinedLabel(screen, m.fonts, "TOWERINO", config.ScreenWidth/2, config.ScreenHeight/3, 64,
		config.BaseSelectColor, config.TextDarkColor, 2, ui.AlignCenter)
	ui.DrawLabel(screen, m.fonts, "Press Space to start", config.ScreenWidth/2, config.ScreenHeight/2, 20,
		config.TextLightColor, ui.AlignCenter)
	ui.DrawLabel(screen, m.fonts, "click base - select   1/2/3 - build   S - sell   P - pause   R - restart",
		config.ScreenWidth/2, config.ScreenHeight/2+40, 14, config.TextLightColor, ui.AlignCenter)
}

func (m *MenuState) Exit() {}
