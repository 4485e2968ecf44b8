// internal/ui/hud.go
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"go-towerino/internal/assets"
	"go-towerino/internal/config"
	"go-towerino/internal/event"
	"go-towerino/internal/tween"
)

// HUD собирает виджеты и держит их в синхроне с сессией через события.
// Свой аниматор: анимации интерфейса идут и на паузе.
type HUD struct {
	Fonts     *assets.FontManager
	Anim      *tween.Animator
	Money     *MoneyIndicator
	Lives     *PlayerHealthIndicator
	Wave      *WaveIndicator
	Announcer *Announcer
	HeadStart *HeadStartIndicator
	Rewards   *RewardPopups
	Pause     *PauseButton
	Speed     *SpeedButton

	dispatcher *event.Dispatcher
	listeners  map[event.EventType]*event.FuncListener
	level      int
}

func NewHUD(fonts *assets.FontManager, dispatcher *event.Dispatcher) *HUD {
	anim := tween.NewAnimator()
	h := &HUD{
		Fonts:      fonts,
		Anim:       anim,
		Money:      NewMoneyIndicator(20, 16, 22),
		Lives:      NewPlayerHealthIndicator(20, 76, anim),
		Wave:       NewWaveIndicator(config.ScreenWidth/2, 16, 18),
		Announcer:  NewAnnouncer(config.ScreenWidth/2, config.ScreenHeight/3, anim),
		HeadStart:  NewHeadStartIndicator(config.ScreenWidth/2-150, 44, 300, 10, anim),
		Rewards:    &RewardPopups{},
		Pause:      NewPauseButton(config.ScreenWidth-40, 36, 12, config.LaneAColor, config.BaseColor),
		Speed:      NewSpeedButton(config.ScreenWidth-90, 36, 12),
		dispatcher: dispatcher,
		listeners:  make(map[event.EventType]*event.FuncListener),
	}
	h.subscribe()
	return h
}

func (h *HUD) on(t event.EventType, fn func(event.Event)) {
	h.listeners[t] = h.dispatcher.SubscribeFunc(t, fn)
}

func (h *HUD) subscribe() {
	h.on(event.MoneyChanged, func(e event.Event) {
		if d, ok := e.Data.(event.MoneyChangedData); ok {
			h.Money.Set(d.Amount)
		}
	})
	h.on(event.HealthChanged, func(e event.Event) {
		if d, ok := e.Data.(event.HealthChangedData); ok {
			h.Lives.Set(d.Lives, d.Max)
			h.Lives.Show()
		}
	})
	h.on(event.WaveProgressChanged, func(e event.Event) {
		if d, ok := e.Data.(event.WaveData); ok {
			h.Wave.SetWave(d.WaveIndex, d.WaveCount)
		}
	})
	h.on(event.WaveAnnouncer, func(e event.Event) {
		if d, ok := e.Data.(event.WaveData); ok {
			h.Announcer.Announce(d.LevelIndex, d.WaveIndex)
		}
	})
	h.on(event.HeadStartProgress, func(e event.Event) {
		if d, ok := e.Data.(event.HeadStartData); ok {
			h.HeadStart.SetProgress(d.Fraction)
		}
	})
	h.on(event.RewardGranted, func(e event.Event) {
		if d, ok := e.Data.(event.RewardData); ok {
			h.Rewards.Add(d.Amount, d.Position)
		}
	})
	h.on(event.LevelLoaded, func(e event.Event) {
		if d, ok := e.Data.(event.LevelData); ok {
			h.level = d.LevelIndex
			h.Wave.SetLevel(d.LevelIndex)
			h.Lives.Hide()
			h.HeadStart.Reset()
			h.Rewards.Clear()
		}
	})
	h.on(event.PauseChanged, func(e event.Event) {
		if d, ok := e.Data.(event.PauseData); ok {
			h.Pause.SetPaused(d.Paused)
		}
	})
}

// Close снимает подписки HUD с диспетчера.
func (h *HUD) Close() {
	for t, l := range h.listeners {
		h.dispatcher.Unsubscribe(t, l)
	}
	h.listeners = make(map[event.EventType]*event.FuncListener)
	h.Anim.Clear()
}

func (h *HUD) Update(deltaTime float64) {
	h.Anim.Update(deltaTime)
	h.Rewards.Update(deltaTime)
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.Rewards.Draw(screen, h.Fonts)
	h.Money.Draw(screen, h.Fonts)
	h.Lives.Draw(screen, h.Fonts)
	h.Wave.Draw(screen, h.Fonts)
	h.HeadStart.Draw(screen)
	h.Pause.Draw(screen)
	h.Speed.Draw(screen)
	h.Announcer.Draw(screen, h.Fonts)
}
