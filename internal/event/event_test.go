package event

import "testing"

type countingListener struct {
	got []Event
}

func (c *countingListener) OnEvent(e Event) { c.got = append(c.got, e) }

func TestDispatchOnlyToSubscribedType(t *testing.T) {
	d := NewDispatcher()
	money := &countingListener{}
	health := &countingListener{}
	d.Subscribe(MoneyChanged, money)
	d.Subscribe(HealthChanged, health)

	d.Dispatch(Event{Type: MoneyChanged, Data: MoneyChangedData{Amount: 50}})

	if len(money.got) != 1 {
		t.Fatalf("Expected 1 money event, got %d", len(money.got))
	}
	if data := money.got[0].Data.(MoneyChangedData); data.Amount != 50 {
		t.Errorf("Expected amount 50, got %d", data.Amount)
	}
	if len(health.got) != 0 {
		t.Errorf("Expected no health events, got %d", len(health.got))
	}
}

func TestUnsubscribeFunc(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	l := d.SubscribeFunc(GameOver, func(Event) { calls++ })
	other := d.SubscribeFunc(GameOver, func(Event) { calls += 10 })

	d.Dispatch(Event{Type: GameOver})
	d.Unsubscribe(GameOver, l)
	d.Dispatch(Event{Type: GameOver})

	if calls != 21 {
		t.Errorf("Expected 21 calls, got %d", calls)
	}
	d.Unsubscribe(GameOver, other)
	d.Dispatch(Event{Type: GameOver})
	if calls != 21 {
		t.Errorf("Expected no more calls, got %d", calls)
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var order []string
	var second *FuncListener
	d.SubscribeFunc(LevelLoaded, func(Event) {
		order = append(order, "first")
		d.Unsubscribe(LevelLoaded, second)
	})
	second = d.SubscribeFunc(LevelLoaded, func(Event) { order = append(order, "second") })

	d.Dispatch(Event{Type: LevelLoaded})
	if len(order) != 2 {
		t.Fatalf("Expected both listeners in the running dispatch, got %v", order)
	}
	d.Dispatch(Event{Type: LevelLoaded})
	if len(order) != 3 || order[2] != "first" {
		t.Errorf("Expected only first after unsubscribe, got %v", order)
	}
	if got := d.Listeners(LevelLoaded); got != 1 {
		t.Errorf("Expected 1 listener, got %d", got)
	}
}
