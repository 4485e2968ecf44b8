// internal/component/timer.go
package component

// Timer — отложенное действие, которое тикает вместе с симуляцией.
// Действие вызывается один раз, когда оставшееся время пересекает ноль.
type Timer struct {
	remaining float64
	action    func()
	armed     bool
}

// Start (пере)запускает таймер. Предыдущее действие отменяется.
func (t *Timer) Start(duration float64, action func()) {
	t.remaining = duration
	t.action = action
	t.armed = true
}

func (t *Timer) Cancel() {
	t.armed = false
	t.action = nil
}

func (t *Timer) Active() bool { return t.armed }

func (t *Timer) Remaining() float64 {
	if !t.armed {
		return 0
	}
	return t.remaining
}

// Tick advances the timer and runs the action when it expires. Reports whether it fired.
func (t *Timer) Tick(dt float64) bool {
	if !t.armed {
		return false
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return false
	}
	action := t.action
	t.armed = false
	t.action = nil
	if action != nil {
		action()
	}
	return true
}
