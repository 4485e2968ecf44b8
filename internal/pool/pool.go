// internal/pool/pool.go
package pool

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"go-towerino/pkg/logger"
)

var (
	ErrPoolExhausted    = errors.New("pool: archetype ceiling reached")
	ErrUnknownArchetype = errors.New("pool: unknown archetype")
)

// DoubleReleaseError — попытка вернуть объект, который сейчас не активен в этом пуле.
type DoubleReleaseError struct {
	Pool      string
	Archetype string
	Index     int
}

func (e *DoubleReleaseError) Error() string {
	return fmt.Sprintf("pool %s: release of inactive or foreign instance %s#%d", e.Pool, e.Archetype, e.Index)
}

// Factory создаёт новый экземпляр архетипа.
type Factory[T Poolable] func(archetype string) (T, error)

type Option func(*options)

type options struct {
	ceiling int
}

// WithCeiling ограничивает число экземпляров одного архетипа. 0 — без ограничения.
func WithCeiling(n int) Option {
	return func(o *options) { o.ceiling = n }
}

type entry[T Poolable] struct {
	instances []T
	free      []int
	active    int
}

// Stats — счётчики одного архетипа.
type Stats struct {
	Active      int
	Inactive    int
	Constructed int
}

// Pool — арена экземпляров по архетипам со списком свободных индексов.
// Используется только из потока симуляции.
type Pool[T Poolable] struct {
	name    string
	factory Factory[T]
	entries map[string]*entry[T]
	order   []string
	ceiling int
	log     *logrus.Entry
}

func New[T Poolable](name string, factory Factory[T], opts ...Option) *Pool[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[T]{
		name:    name,
		factory: factory,
		entries: make(map[string]*entry[T]),
		ceiling: o.ceiling,
		log:     logger.For("pool").WithField("pool", name),
	}
}

func (p *Pool[T]) Name() string { return p.name }

func (p *Pool[T]) entry(archetype string) *entry[T] {
	e, ok := p.entries[archetype]
	if !ok {
		e = &entry[T]{}
		p.entries[archetype] = e
		p.order = append(p.order, archetype)
	}
	return e
}

// Acquire выдаёт свободный экземпляр архетипа или создаёт новый.
// Ошибка возможна только при заданном потолке или отказе фабрики.
func (p *Pool[T]) Acquire(archetype string) (T, error) {
	var zero T
	e := p.entry(archetype)

	if n := len(e.free); n > 0 {
		idx := e.free[n-1]
		e.free = e.free[:n-1]
		inst := e.instances[idx]
		h := inst.PoolHandle()
		h.active = true
		h.lease++
		e.active++
		p.log.WithFields(logrus.Fields{"archetype": archetype, "index": idx}).Debug("reuse")
		return inst, nil
	}

	if p.ceiling > 0 && len(e.instances) >= p.ceiling {
		return zero, fmt.Errorf("%w: %s/%s at %d", ErrPoolExhausted, p.name, archetype, p.ceiling)
	}

	inst, err := p.factory(archetype)
	if err != nil {
		return zero, fmt.Errorf("pool %s: create %q: %w", p.name, archetype, err)
	}
	h := inst.PoolHandle()
	*h = Handle{
		archetype: archetype,
		index:     len(e.instances),
		active:    true,
		lease:     1,
		owner:     p,
	}
	e.instances = append(e.instances, inst)
	e.active++
	p.log.WithFields(logrus.Fields{"archetype": archetype, "index": h.index}).Debug("create")
	return inst, nil
}

// Release возвращает экземпляр в пул за O(1) по обратному индексу.
// Повторный или чужой возврат не выполняется и возвращает *DoubleReleaseError.
func (p *Pool[T]) Release(inst T) error {
	h := inst.PoolHandle()
	e, ok := p.entries[h.archetype]
	if !ok || h.owner != p || !h.active || h.index >= len(e.instances) || e.instances[h.index].PoolHandle() != h {
		err := &DoubleReleaseError{Pool: p.name, Archetype: h.archetype, Index: h.index}
		p.log.WithFields(logrus.Fields{"archetype": h.archetype, "index": h.index}).Error(err.Error())
		return err
	}
	h.active = false
	e.free = append(e.free, h.index)
	e.active--
	p.log.WithFields(logrus.Fields{"archetype": h.archetype, "index": h.index}).Debug("return")
	return nil
}

// ResetAll выключает все активные экземпляры (TurnOff(true)), не уничтожая их.
func (p *Pool[T]) ResetAll() {
	for _, archetype := range p.order {
		e := p.entries[archetype]
		for _, inst := range e.instances {
			h := inst.PoolHandle()
			if !h.active {
				continue
			}
			s, switchable := any(inst).(Switchable)
			if switchable {
				s.TurnOff(true)
			}
			if h.active {
				if switchable {
					p.log.WithFields(logrus.Fields{"archetype": archetype, "index": h.index}).Warn("instance stayed active after TurnOff")
				}
				_ = p.Release(inst)
			}
		}
	}
}

// Clear уничтожает все экземпляры, активные и свободные, и очищает реестр.
func (p *Pool[T]) Clear() {
	for _, archetype := range p.order {
		for _, inst := range p.entries[archetype].instances {
			if d, ok := any(inst).(Destroyable); ok {
				d.Destroy()
			}
			h := inst.PoolHandle()
			h.active = false
			h.owner = nil
		}
	}
	p.entries = make(map[string]*entry[T])
	p.order = nil
	p.log.Debug("cleared")
}

// Snapshot возвращает активные экземпляры: архетипы в порядке регистрации, внутри — по индексу.
func (p *Pool[T]) Snapshot() []T {
	var out []T
	for _, archetype := range p.order {
		for _, inst := range p.entries[archetype].instances {
			if inst.PoolHandle().active {
				out = append(out, inst)
			}
		}
	}
	return out
}

// Each вызывает fn для каждого активного экземпляра. Экземпляры, возвращённые
// в пул во время обхода, пропускаются; выданные во время обхода — нет.
func (p *Pool[T]) Each(fn func(T)) {
	for _, inst := range p.Snapshot() {
		if inst.PoolHandle().active {
			fn(inst)
		}
	}
}

// ActiveCount — число активных экземпляров всех архетипов.
func (p *Pool[T]) ActiveCount() int {
	n := 0
	for _, e := range p.entries {
		n += e.active
	}
	return n
}

func (p *Pool[T]) Stats(archetype string) Stats {
	e, ok := p.entries[archetype]
	if !ok {
		return Stats{}
	}
	return Stats{Active: e.active, Inactive: len(e.free), Constructed: len(e.instances)}
}
