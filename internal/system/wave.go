// internal/system/wave.go
package system

import (
	"errors"

	"github.com/sirupsen/logrus"

	"go-towerino/internal/config"
	"go-towerino/internal/defs"
	"go-towerino/internal/entity"
	"go-towerino/internal/event"
	"go-towerino/internal/interfaces"
	"go-towerino/pkg/logger"
)

var ErrEnemyCountUnderflow = errors.New("wave: enemy removed more times than spawned")

type WaveState int

const (
	WaveIdle WaveState = iota
	WaveIntro
	WaveHeadStart
	WaveSpawning
	WaveCleared
	WaveLevelCleared
	WaveGameOver
)

func (s WaveState) String() string {
	return [...]string{"idle", "intro", "head-start", "spawning", "cleared", "level-cleared", "game-over"}[s]
}

// WaveScheduler ведёт волны одного уровня: отсчёт перед волной, спавн по времени,
// ожидание после зачистки, жизни игрока и счётчик активных врагов.
type WaveScheduler struct {
	level      defs.LevelDefinition
	levelIndex int
	settings   config.Settings
	host       interfaces.LevelHost
	dispatcher *event.Dispatcher
	log        *logrus.Entry

	state     WaveState
	waveIndex int // сколько волн начато
	lives     int
	active    int
	queue     []defs.SpawnEvent
	clock     float64
	headStart float64
	intro     float64
}

func NewWaveScheduler(levelIndex int, level defs.LevelDefinition, settings config.Settings, host interfaces.LevelHost, dispatcher *event.Dispatcher) *WaveScheduler {
	return &WaveScheduler{
		level:      level,
		levelIndex: levelIndex,
		settings:   settings,
		host:       host,
		dispatcher: dispatcher,
		log:        logger.For("wave").WithField("level", levelIndex),
	}
}

func (s *WaveScheduler) State() WaveState       { return s.state }
func (s *WaveScheduler) Lives() int             { return s.lives }
func (s *WaveScheduler) ActiveEnemies() int     { return s.active }
func (s *WaveScheduler) WaveIndex() int         { return s.waveIndex }
func (s *WaveScheduler) WaveCount() int         { return len(s.level.Waves) }
func (s *WaveScheduler) Clock() float64         { return s.clock }
func (s *WaveScheduler) PendingSpawns() int     { return len(s.queue) }
func (s *WaveScheduler) HeadStartLeft() float64 { return s.headStart }

// Start сбрасывает жизни и даёт короткую передышку перед первой волной.
func (s *WaveScheduler) Start() {
	s.lives = s.settings.StartingLives
	s.waveIndex = 0
	s.active = 0
	s.queue = nil
	s.clock = 0
	s.intro = s.settings.LevelIntroDelay
	s.state = WaveIntro
	s.log.WithField("waves", len(s.level.Waves)).Info("level started")
	if s.intro <= 0 {
		s.startNextWave()
	}
}

// Update — один тик планировщика. Вызывается после всех сущностей,
// поэтому счётчик активных врагов уже учитывает смерти и прибытия этого тика.
func (s *WaveScheduler) Update(deltaTime float64) {
	switch s.state {
	case WaveIntro:
		s.intro -= deltaTime
		if s.intro <= 0 {
			s.startNextWave()
		}
	case WaveHeadStart:
		s.headStart -= deltaTime
		s.dispatcher.Dispatch(event.Event{Type: event.HeadStartProgress, Data: event.HeadStartData{Fraction: s.headStartFraction()}})
		if s.headStart <= 0 {
			s.beginSpawning()
		}
	case WaveSpawning:
		s.clock += deltaTime
		s.spawnDue()
		s.checkCleared()
	case WaveCleared:
		s.clock += deltaTime
		if s.clock >= s.settings.WaveEndWaitDuration {
			s.startNextWave()
		}
	}
}

func (s *WaveScheduler) headStartFraction() float64 {
	d := s.settings.HeadStartDuration
	if d <= 0 || s.headStart <= 0 {
		return 1
	}
	return 1 - s.headStart/d
}

func (s *WaveScheduler) startNextWave() {
	if s.waveIndex == len(s.level.Waves) {
		s.state = WaveLevelCleared
		s.log.Info("level cleared")
		s.host.LevelCleared()
		return
	}
	s.queue = s.level.Waves[s.waveIndex].SortedEvents()
	s.waveIndex++
	s.headStart = s.settings.HeadStartDuration
	s.state = WaveHeadStart

	data := event.WaveData{LevelIndex: s.levelIndex, WaveIndex: s.waveIndex, WaveCount: len(s.level.Waves)}
	s.dispatcher.Dispatch(event.Event{Type: event.WaveProgressChanged, Data: data})
	s.dispatcher.Dispatch(event.Event{Type: event.WaveAnnouncer, Data: data})
	if s.waveIndex == 1 {
		s.dispatchHealth()
	}
	s.dispatcher.Dispatch(event.Event{Type: event.HeadStartProgress, Data: event.HeadStartData{Fraction: 0}})
	s.log.WithFields(logrus.Fields{"wave": s.waveIndex, "spawns": len(s.queue)}).Info("head start")
}

// beginSpawning запускает часы волны и сразу спавнит всё, что назначено на ноль.
func (s *WaveScheduler) beginSpawning() {
	s.state = WaveSpawning
	s.active = 0
	s.clock = 0
	s.spawnDue()
	s.checkCleared()
}

// spawnDue спавнит всех врагов из головы очереди, чьё время уже наступило.
func (s *WaveScheduler) spawnDue() {
	for len(s.queue) > 0 && s.queue[0].TimeOffset <= s.clock {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		if err := s.host.SpawnEnemy(ev); err != nil {
			s.log.WithError(err).WithField("archetype", ev.Archetype).Error("spawn failed")
			continue
		}
		s.active++
		s.dispatcher.Dispatch(event.Event{Type: event.EnemySpawned, Data: event.EnemyData{Archetype: ev.Archetype, Active: s.active}})
	}
}

func (s *WaveScheduler) checkCleared() {
	if s.state != WaveSpawning || len(s.queue) > 0 || s.active > 0 {
		return
	}
	s.state = WaveCleared
	s.clock = 0
	s.host.ReleaseTowerSelection()
	s.log.WithField("wave", s.waveIndex).Info("wave cleared")
}

// RemoveEnemy — путь смерти. Вызывается ровно один раз на врага.
func (s *WaveScheduler) RemoveEnemy() error {
	return s.removeEnemy(true)
}

func (s *WaveScheduler) removeEnemy(killed bool) error {
	if s.active <= 0 {
		s.log.WithError(ErrEnemyCountUnderflow).Error("contract violation")
		return ErrEnemyCountUnderflow
	}
	s.active--
	s.dispatcher.Dispatch(event.Event{Type: event.EnemyRemoved, Data: event.EnemyData{Active: s.active, Killed: killed}})
	return nil
}

// EnemyReachedDestination: минус жизнь, анимация прибытия и уменьшение счётчика.
func (s *WaveScheduler) EnemyReachedDestination(e *entity.Enemy) {
	if s.state == WaveGameOver {
		// счёт уже закрыт: только убираем врага со сцены до рестарта
		e.DisposeReached()
		return
	}
	if s.lives > 0 {
		s.lives--
	}
	s.dispatchHealth()

	e.DisposeReached()
	if e.ClaimRemoval() {
		if err := s.removeEnemy(false); err != nil {
			s.log.WithError(err).WithField("enemy", e.Archetype()).Error("remove arrived enemy")
		}
	} else {
		s.log.WithField("enemy", e.Archetype()).Error("arrived enemy was already removed")
	}

	if s.lives == 0 {
		s.state = WaveGameOver
		s.log.Warn("game over")
		s.host.GameOver()
	}
}

func (s *WaveScheduler) dispatchHealth() {
	s.dispatcher.Dispatch(event.Event{Type: event.HealthChanged, Data: event.HealthChangedData{Lives: s.lives, Max: s.settings.StartingLives}})
}
