// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data interface{} // Данные события, если нужны
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// FuncListener оборачивает функцию в Listener. Указатель сравним, поэтому
// такую подписку можно снять через Unsubscribe.
type FuncListener struct {
	fn func(Event)
}

func (f *FuncListener) OnEvent(e Event) { f.fn(e) }

// Dispatcher рассылает события синхронно, в том же тике, в порядке подписки.
// Подписки, изменённые во время рассылки, вступают в силу со следующего события.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]Listener)}
}

func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeFunc подписывает функцию и возвращает слушателя для отписки.
func (d *Dispatcher) SubscribeFunc(eventType EventType, fn func(Event)) *FuncListener {
	l := &FuncListener{fn: fn}
	d.Subscribe(eventType, l)
	return l
}

// Unsubscribe снимает первую подписку listener на eventType.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	ls := d.listeners[eventType]
	for i, l := range ls {
		if l != listener {
			continue
		}
		// новый срез: рассылка, идущая прямо сейчас, держит старый
		rest := make([]Listener, 0, len(ls)-1)
		rest = append(rest, ls[:i]...)
		rest = append(rest, ls[i+1:]...)
		if len(rest) == 0 {
			delete(d.listeners, eventType)
		} else {
			d.listeners[eventType] = rest
		}
		return
	}
}

// Listeners — число подписчиков на eventType.
func (d *Dispatcher) Listeners(eventType EventType) int {
	return len(d.listeners[eventType])
}

func (d *Dispatcher) Dispatch(e Event) {
	ls := d.listeners[e.Type]
	for _, l := range ls[:len(ls):len(ls)] {
		l.OnEvent(e)
	}
}
