// internal/tween/animator.go
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ID идентифицирует запущенную анимацию. Ноль — «нет анимации».
type ID uint64

// Easing functions used by the game.
var (
	OutBack = ease.OutBack
	InBack  = ease.InBack
	OutQuad = ease.OutQuad
	InQuad  = ease.InQuad
	Linear  = ease.Linear
)

type animation struct {
	tween      *gween.Tween
	onUpdate   func(float64)
	onComplete func()
}

// Animator — сервис анимаций «запустил и забыл». Значения доставляются в onUpdate
// каждый тик, onComplete вызывается один раз по завершении. Отменённая анимация
// не вызывает ни того, ни другого.
type Animator struct {
	next    ID
	running map[ID]*animation
	order   []ID
}

func NewAnimator() *Animator {
	return &Animator{running: make(map[ID]*animation)}
}

// Start запускает анимацию from → to за duration секунд.
// Анимация начинает двигаться со следующего Update.
func (a *Animator) Start(from, to, duration float64, easing ease.TweenFunc, onUpdate func(float64), onComplete func()) ID {
	if easing == nil {
		easing = ease.Linear
	}
	if duration < 0 {
		duration = 0
	}
	a.next++
	id := a.next
	a.running[id] = &animation{
		tween:      gween.New(float32(from), float32(to), float32(duration), easing),
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
	a.order = append(a.order, id)
	if onUpdate != nil {
		onUpdate(from)
	}
	return id
}

// Cancel останавливает анимацию без вызова колбэков.
func (a *Animator) Cancel(id ID) {
	delete(a.running, id)
}

func (a *Animator) IsTweening(id ID) bool {
	_, ok := a.running[id]
	return ok
}

func (a *Animator) Len() int { return len(a.running) }

// Update продвигает все анимации, запущенные до этого вызова, в порядке запуска.
func (a *Animator) Update(dt float64) {
	ids := a.order
	a.order = make([]ID, 0, len(ids))
	for _, id := range ids {
		anim, ok := a.running[id]
		if !ok {
			continue
		}
		value, done := anim.tween.Update(float32(dt))
		if anim.onUpdate != nil {
			anim.onUpdate(float64(value))
		}
		if done {
			delete(a.running, id)
			if anim.onComplete != nil {
				anim.onComplete()
			}
			continue
		}
		// колбэк мог отменить эту же анимацию
		if _, still := a.running[id]; still {
			a.order = append(a.order, id)
		}
	}
}

// Clear отменяет все анимации.
func (a *Animator) Clear() {
	a.running = make(map[ID]*animation)
	a.order = nil
}
