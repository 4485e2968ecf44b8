// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State — экран игры: меню, бой, пауза, титры.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine держит активный экран. Переход, запрошенный из Update,
// выполняется после возврата из него: Exit не вызывается посреди кадра.
type StateMachine struct {
	current  State
	next     State
	pending  bool
	updating bool
}

func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Current возвращает активный экран (nil до первого SetState).
func (sm *StateMachine) Current() State {
	return sm.current
}

// SetState переключает экран; nil просто закрывает текущий.
func (sm *StateMachine) SetState(s State) {
	if sm.updating {
		sm.next, sm.pending = s, true
		return
	}
	sm.switchTo(s)
}

func (sm *StateMachine) switchTo(s State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = s
	if s != nil {
		s.Enter()
	}
}

func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current == nil {
		return
	}
	sm.updating = true
	sm.current.Update(deltaTime)
	sm.updating = false

	if sm.pending {
		next := sm.next
		sm.next, sm.pending = nil, false
		sm.switchTo(next)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
