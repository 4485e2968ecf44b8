// internal/utils/prng.go
package utils

import (
	"math/rand/v2"
	"time"
)

// Dice — сидируемый генератор для игровых розыгрышей (вариант звука и т.п.).
// Один сид даёт одну и ту же последовательность, что удобно для реплея багов.
type Dice struct {
	seed uint64
	rng  *rand.Rand
}

// NewDice создаёт генератор; seed == 0 означает «взять текущее время».
func NewDice(seed int64) *Dice {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return &Dice{seed: s, rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func (d *Dice) Seed() uint64 { return d.seed }

// Pick возвращает индекс в [0, n); для пустого диапазона — 0.
func (d *Dice) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return d.rng.IntN(n)
}
