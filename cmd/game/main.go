// cmd/game/main.go
package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-towerino/internal/app"
	"go-towerino/internal/assets"
	"go-towerino/internal/config"
	"go-towerino/internal/state"
	"go-towerino/pkg/logger"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settingsPath := flag.String("config", "", "YAML-файл с настройками")
	defsDir := flag.String("defs", "", "каталог с определениями (по умолчанию встроенные)")
	hotReload := flag.Bool("hot-reload", false, "перечитывать определения при изменении файлов")
	fontPath := flag.String("font", "", "TTF-шрифт для интерфейса")
	skipMenu := flag.Bool("skip-menu", false, "начинать сразу с игры")
	debug := flag.Bool("debug", false, "отладочная строка внизу экрана")
	seed := flag.Int64("seed", 0, "сид PRNG (0 — из настроек)")
	flag.Parse()

	logger.Init()
	log := logger.Log.WithField("component", "main")

	settings := config.Default()
	if *settingsPath != "" {
		s, err := config.LoadSettings(*settingsPath)
		if err != nil {
			log.WithError(err).Fatal("load settings")
		}
		settings = s
	}
	if *defsDir != "" {
		settings.DefsDir = *defsDir
	}
	if *hotReload {
		settings.HotReload = true
	}
	if *seed != 0 {
		settings.Seed = *seed
	}

	lib, err := app.LoadLibrary(settings)
	if err != nil {
		log.WithError(err).Fatal("load definitions")
	}
	game, err := app.NewGame(settings, lib)
	if err != nil {
		log.WithError(err).Fatal("create session")
	}

	fonts := assets.NewFontManager()
	if *fontPath != "" {
		if err := fonts.LoadTTF(*fontPath); err != nil {
			log.WithError(err).Warn("using built-in font")
		}
	}

	sm := state.NewStateMachine()
	gameState := state.NewGameState(sm, game, fonts)
	gameState.Debug = *debug
	if *skipMenu {
		sm.SetState(gameState)
	} else {
		sm.SetState(state.NewMenuState(sm, gameState, fonts))
	}

	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Towerino")
	runErr := ebiten.RunGame(a)

	gameState.Close()
	game.Shutdown()
	if runErr != nil {
		log.WithError(runErr).Error("game loop")
		os.Exit(1)
	}
}
