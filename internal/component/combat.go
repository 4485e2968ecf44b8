package component

// Health — компонент здоровья. Current всегда в [0, Max].
type Health struct {
	Current float64
	Max     float64
}

func (h *Health) Reset() { h.Current = h.Max }

// Apply вычитает урон с полом в нуле и возвращает остаток.
func (h *Health) Apply(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current
}

func (h Health) Alive() bool { return h.Current > 0 }

// Fraction — доля оставшегося здоровья для полоски HP.
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// Combat — компонент для башен, управляющий атакой
type Combat struct {
	AttackRange    float64 // Радиус действия в пикселях
	AttackInterval float64 // Секунд между выстрелами
	Cooldown       float64 // Оставшееся время до следующего выстрела
}
