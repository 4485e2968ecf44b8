// internal/state/ending_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-towerino/internal/assets"
	"go-towerino/internal/config"
	"go-towerino/internal/ui"
)

// EndingState — финал кампании. Space начинает кампанию заново.
type EndingState struct {
	sm    *StateMachine
	game  *GameState
	fonts *assets.FontManager
	time  float64
}

func NewEndingState(sm *StateMachine, game *GameState, fonts *assets.FontManager) *EndingState {
	return &EndingState{sm: sm, game: game, fonts: fonts}
}

func (s *EndingState) Enter() { s.time = 0 }

func (s *EndingState) Update(deltaTime float64) {
	s.time += deltaTime
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.game.restart()
		s.sm.SetState(s.game)
	}
}

func (s *EndingState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	// титры медленно выезжают снизу
	y := config.ScreenHeight - s.time*60
	if y < config.ScreenHeight/3 {
		y = config.ScreenHeight / 3
	}
	ui.DrawOutlinedLabel(screen, s.fonts, "Campaign completed", config.ScreenWidth/2, y, 40,
		config.BaseSelectColor, config.TextDarkColor, 2, ui.AlignCenter)
	ui.DrawLabel(screen, s.fonts, "Press Space to play again", config.ScreenWidth/2, y+70, 18,
		config.TextLightColor, ui.AlignCenter)
}

func (s *EndingState) Exit() {}
