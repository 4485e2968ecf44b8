// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-towerino/internal/assets"
	"go-towerino/internal/config"
	"go-towerino/internal/interfaces"
	"go-towerino/internal/ui"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// GameInterface — то, что пауза знает об игровом состоянии под собой.
type GameInterface interface {
	GetGame() interfaces.Game
	PauseButtonHit(x, y int) bool
}

type PauseState struct {
	stateMachine  *StateMachine
	previousState State
	fonts         *assets.FontManager
}

func NewPauseState(sm *StateMachine, prevState State, fonts *assets.FontManager) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
		fonts:         fonts,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)

	gs, ok := s.previousState.(GameInterface)
	if !unpause && ok && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		unpause = gs.PauseButtonHit(ebiten.CursorPosition())
	}
	if !unpause {
		return
	}
	// снимаем паузу в самой сессии до возврата в игру
	if ok {
		if game := gs.GetGame(); game != nil {
			game.PauseToggle()
		}
	}
	s.stateMachine.SetState(s.previousState)
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)
	ui.DrawOutlinedLabel(screen, s.fonts, "PAUSED", config.ScreenWidth/2, config.ScreenHeight/2-30, 48,
		config.TextLightColor, config.TextDarkColor, 2, ui.AlignCenter)
	ui.DrawLabel(screen, s.fonts, "P / Esc - resume", config.ScreenWidth/2, config.ScreenHeight/2+30, 16,
		config.TextLightColor, ui.AlignCenter)
}

func (s *PauseState) Exit() {}
