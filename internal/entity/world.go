// internal/entity/world.go
package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"go-towerino/internal/defs"
	"go-towerino/internal/physics"
	"go-towerino/internal/pool"
	"go-towerino/internal/tween"
	"go-towerino/pkg/hexmap"
	"go-towerino/pkg/logger"
)

// Hooks — обратные вызовы из сущностей в уровень и сессию.
type Hooks interface {
	// RemoveEnemy уменьшает счётчик активных врагов ровно один раз на врага.
	RemoveEnemy() error
	EnemyReward(amount int, pos cp.Vector)
	EnemyHit(pos cp.Vector)
}

// Navigator строит маршрут по разрешённым дорожкам.
type Navigator interface {
	Route(from, to cp.Vector, lanes hexmap.LaneMask) ([]cp.Vector, error)
}

type nopHooks struct{}

func (nopHooks) RemoveEnemy() error         { return nil }
func (nopHooks) EnemyReward(int, cp.Vector) {}
func (nopHooks) EnemyHit(cp.Vector)         {}

// World хранит пулы сущностей и общие сервисы, которые им нужны.
type World struct {
	Defs    *defs.Library
	Physics *physics.World
	Anim    *tween.Animator
	Nav     Navigator
	Hooks   Hooks

	Enemies     *pool.Pool[*Enemy]
	Towers      *pool.Pool[*Tower]
	Projectiles *pool.Pool[*Projectile]
	HealthBars  *pool.Pool[*HealthBar]
	Impacts     *pool.Pool[*Impact]

	log *logrus.Entry
}

func NewWorld(lib *defs.Library, nav Navigator, opts ...pool.Option) *World {
	w := &World{
		Defs:    lib,
		Physics: physics.NewWorld(),
		Anim:    tween.NewAnimator(),
		Nav:     nav,
		Hooks:   nopHooks{},
		log:     logger.For("entity"),
	}
	w.Enemies = pool.New[*Enemy]("enemies", w.newEnemy, opts...)
	w.Towers = pool.New[*Tower]("towers", w.newTower, opts...)
	w.Projectiles = pool.New[*Projectile]("projectiles", w.newProjectile, opts...)
	w.HealthBars = pool.New[*HealthBar]("healthbars", func(string) (*HealthBar, error) {
		return &HealthBar{world: w}, nil
	}, opts...)
	w.Impacts = pool.New[*Impact]("impacts", w.newImpact, opts...)
	return w
}

func (w *World) newEnemy(archetype string) (*Enemy, error) {
	if _, ok := w.Defs.Enemy(archetype); !ok {
		return nil, fmt.Errorf("%w: enemy %q", pool.ErrUnknownArchetype, archetype)
	}
	return &Enemy{world: w}, nil
}

func (w *World) newTower(archetype string) (*Tower, error) {
	if _, ok := w.Defs.TowerByArchetype(archetype); !ok {
		return nil, fmt.Errorf("%w: tower %q", pool.ErrUnknownArchetype, archetype)
	}
	return &Tower{world: w}, nil
}

func (w *World) newProjectile(archetype string) (*Projectile, error) {
	if _, ok := w.Defs.Projectile(archetype); !ok {
		return nil, fmt.Errorf("%w: projectile %q", pool.ErrUnknownArchetype, archetype)
	}
	return &Projectile{world: w}, nil
}

func (w *World) newImpact(archetype string) (*Impact, error) {
	if _, ok := w.Defs.Impact(archetype); !ok {
		return nil, fmt.Errorf("%w: impact %q", pool.ErrUnknownArchetype, archetype)
	}
	return &Impact{world: w}, nil
}

// ResetAll выключает все активные сущности на границе уровня.
// Башни идут первыми: они сами возвращают свои заряженные снаряды.
func (w *World) ResetAll() {
	w.Towers.ResetAll()
	w.Projectiles.ResetAll()
	w.Enemies.ResetAll()
	w.HealthBars.ResetAll()
	w.Impacts.ResetAll()
	w.Anim.Clear()
}

// Clear уничтожает всё при завершении сессии.
func (w *World) Clear() {
	w.Towers.Clear()
	w.Projectiles.Clear()
	w.Enemies.Clear()
	w.HealthBars.Clear()
	w.Impacts.Clear()
	w.Anim.Clear()
}

// releaseTo возвращает объект в пул; ошибка контракта только логируется.
func releaseTo[T pool.Poolable](p *pool.Pool[T], inst T, log *logrus.Entry) {
	if err := p.Release(inst); err != nil {
		log.WithError(err).Error("release failed")
	}
}

// leaseGuard возвращает функцию, которая вызывает fn только в той же аренде.
func leaseGuard(h *pool.Handle, fn func()) func() {
	lease := h.Lease()
	return func() {
		if h.Active() && h.Lease() == lease {
			fn()
		}
	}
}
