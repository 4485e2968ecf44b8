package pool

// Handle встраивается в каждый объект пула: архетип, индекс в арене,
// флаг активности и номер аренды. Номер аренды растёт при каждом Acquire,
// поэтому устаревшие ссылки и отложенные колбэки можно отличить от текущих.
type Handle struct {
	archetype string
	index     int
	active    bool
	lease     uint32
	owner     interface{}
}

// PoolHandle реализует Poolable для типов, встраивающих Handle.
func (h *Handle) PoolHandle() *Handle { return h }

func (h *Handle) Archetype() string { return h.archetype }
func (h *Handle) Index() int        { return h.index }
func (h *Handle) Active() bool      { return h.active }
func (h *Handle) Lease() uint32     { return h.lease }

// Poolable — всё, что может храниться в пуле.
type Poolable interface {
	PoolHandle() *Handle
}

// Switchable объекты выключаются при ResetAll, а не просто возвращаются в пул.
type Switchable interface {
	TurnOff(instant bool)
}

// Destroyable объекты освобождают ресурсы при Clear.
type Destroyable interface {
	Destroy()
}

// Ref — слабая ссылка на объект пула. Становится недействительной,
// как только объект возвращён в пул или выдан заново.
type Ref[T Poolable] struct {
	inst  T
	lease uint32
	set   bool
}

func NewRef[T Poolable](inst T) Ref[T] {
	return Ref[T]{inst: inst, lease: inst.PoolHandle().lease, set: true}
}

// Get returns the referenced instance if it is still on the same lease.
func (r Ref[T]) Get() (T, bool) {
	if !r.set {
		var zero T
		return zero, false
	}
	h := r.inst.PoolHandle()
	if !h.active || h.lease != r.lease {
		var zero T
		return zero, false
	}
	return r.inst, true
}

// IsSet reports whether the reference was ever assigned, valid or not.
func (r Ref[T]) IsSet() bool { return r.set }
