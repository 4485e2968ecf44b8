package pool

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"go-towerino/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type dummy struct {
	Handle
	turnedOff int
	destroyed bool
	pool      *Pool[*dummy]
	sticky    bool // не возвращается в пул в TurnOff
}

func (d *dummy) TurnOff(instant bool) {
	d.turnedOff++
	if !d.sticky {
		_ = d.pool.Release(d)
	}
}

func (d *dummy) Destroy() { d.destroyed = true }

func newDummyPool(opts ...Option) *Pool[*dummy] {
	var p *Pool[*dummy]
	p = New[*dummy]("test", func(archetype string) (*dummy, error) {
		if archetype == "bad" {
			return nil, ErrUnknownArchetype
		}
		return &dummy{pool: p}, nil
	}, opts...)
	return p
}

func checkPartition(t *testing.T, p *Pool[*dummy], archetype string) {
	t.Helper()
	st := p.Stats(archetype)
	if st.Active+st.Inactive != st.Constructed {
		t.Fatalf("Expected active+inactive == constructed, got %d+%d != %d", st.Active, st.Inactive, st.Constructed)
	}
	e := p.entries[archetype]
	if e == nil {
		return
	}
	free := make(map[int]bool)
	for _, idx := range e.free {
		if free[idx] {
			t.Fatalf("index %d is free twice", idx)
		}
		free[idx] = true
		if e.instances[idx].Active() {
			t.Fatalf("index %d is both free and active", idx)
		}
	}
	for i, inst := range e.instances {
		if !inst.Active() && !free[i] {
			t.Fatalf("inactive index %d missing from free list", i)
		}
	}
}

func TestAcquireReleaseSequences(t *testing.T) {
	p := newDummyPool()
	var held []*dummy
	// детерминированная «случайная» последовательность операций
	ops := []int{1, 1, 1, 0, 1, 0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}
	for step, op := range ops {
		if op == 1 || len(held) == 0 {
			d, err := p.Acquire("enemy")
			if err != nil {
				t.Fatalf("step %d: Acquire: %v", step, err)
			}
			held = append(held, d)
		} else {
			i := step % len(held)
			if err := p.Release(held[i]); err != nil {
				t.Fatalf("step %d: Release: %v", step, err)
			}
			held = append(held[:i], held[i+1:]...)
		}
		checkPartition(t, p, "enemy")
	}
	if got := p.Stats("enemy").Active; got != len(held) {
		t.Errorf("Expected %d active, got %d", len(held), got)
	}
}

func TestReleaseReusesInstanceAndBumpsLease(t *testing.T) {
	p := newDummyPool()
	a, _ := p.Acquire("tower")
	lease := a.Lease()
	if err := p.Release(a); err != nil {
		t.Fatalf("Release: %v", err)
	}
	b, _ := p.Acquire("tower")
	if a != b {
		t.Fatal("Expected the released instance to be reused")
	}
	if b.Lease() == lease {
		t.Error("Expected lease to change on reuse")
	}
	if got := p.Stats("tower").Constructed; got != 1 {
		t.Errorf("Expected 1 constructed, got %d", got)
	}
}

func TestDoubleRelease(t *testing.T) {
	p := newDummyPool()
	a, _ := p.Acquire("tower")
	if err := p.Release(a); err != nil {
		t.Fatalf("first Release: %v", err)
	}
	err := p.Release(a)
	var dre *DoubleReleaseError
	if !errors.As(err, &dre) {
		t.Fatalf("Expected DoubleReleaseError, got %v", err)
	}
	if dre.Archetype != "tower" {
		t.Errorf("Expected archetype tower, got %q", dre.Archetype)
	}
	st := p.Stats("tower")
	if st.Inactive != 1 || st.Active != 0 {
		t.Errorf("Expected partition unchanged (0 active, 1 inactive), got %+v", st)
	}
	checkPartition(t, p, "tower")
}

func TestReleaseForeignInstance(t *testing.T) {
	p1 := newDummyPool()
	p2 := newDummyPool()
	a, _ := p1.Acquire("x")
	_, _ = p2.Acquire("x")
	var dre *DoubleReleaseError
	if err := p2.Release(a); !errors.As(err, &dre) {
		t.Fatalf("Expected DoubleReleaseError for foreign instance, got %v", err)
	}
	if err := p2.Release(&dummy{}); !errors.As(err, &dre) {
		t.Fatalf("Expected DoubleReleaseError for untracked instance, got %v", err)
	}
}

func TestResetAllTurnsOffActive(t *testing.T) {
	p := newDummyPool()
	a, _ := p.Acquire("a")
	b, _ := p.Acquire("b")
	c, _ := p.Acquire("b")
	_ = p.Release(c)

	p.ResetAll()

	if a.turnedOff != 1 || b.turnedOff != 1 {
		t.Errorf("Expected active instances turned off once, got %d and %d", a.turnedOff, b.turnedOff)
	}
	if c.turnedOff != 0 {
		t.Errorf("Expected inactive instance untouched, got %d", c.turnedOff)
	}
	if p.ActiveCount() != 0 {
		t.Errorf("Expected no active instances, got %d", p.ActiveCount())
	}
	if a.destroyed || b.destroyed {
		t.Error("Expected ResetAll not to destroy instances")
	}
	if got := p.Stats("b").Constructed; got != 2 {
		t.Errorf("Expected instances kept, got %d constructed", got)
	}
}

func TestResetAllForcesStickyInstances(t *testing.T) {
	p := newDummyPool()
	a, _ := p.Acquire("a")
	a.sticky = true
	p.ResetAll()
	if a.Active() {
		t.Error("Expected instance to be released even if TurnOff did not")
	}
	checkPartition(t, p, "a")
}

func TestClearDestroysEverything(t *testing.T) {
	p := newDummyPool()
	a, _ := p.Acquire("a")
	b, _ := p.Acquire("a")
	_ = p.Release(b)

	p.Clear()

	if !a.destroyed || !b.destroyed {
		t.Error("Expected active and inactive instances destroyed")
	}
	if st := p.Stats("a"); st.Constructed != 0 {
		t.Errorf("Expected empty registry, got %+v", st)
	}
	var dre *DoubleReleaseError
	if err := p.Release(a); !errors.As(err, &dre) {
		t.Errorf("Expected release after Clear to fail, got %v", err)
	}
}

func TestCeiling(t *testing.T) {
	p := newDummyPool(WithCeiling(2))
	a, _ := p.Acquire("a")
	if _, err := p.Acquire("a"); err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if _, err := p.Acquire("a"); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Expected ErrPoolExhausted, got %v", err)
	}
	if _, err := p.Acquire("other"); err != nil {
		t.Errorf("Expected ceiling to be per archetype, got %v", err)
	}
	_ = p.Release(a)
	if _, err := p.Acquire("a"); err != nil {
		t.Errorf("Expected reuse below ceiling, got %v", err)
	}
}

func TestFactoryError(t *testing.T) {
	p := newDummyPool()
	if _, err := p.Acquire("bad"); !errors.Is(err, ErrUnknownArchetype) {
		t.Errorf("Expected ErrUnknownArchetype, got %v", err)
	}
}

func TestSnapshotOrder(t *testing.T) {
	p := newDummyPool()
	for _, arch := range []string{"b", "a", "b", "a"} {
		if _, err := p.Acquire(arch); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
	}
	got := ""
	for _, d := range p.Snapshot() {
		got += fmt.Sprintf("%s%d ", d.Archetype(), d.Index())
	}
	if got != "b0 b1 a0 a1 " {
		t.Errorf("Expected b0 b1 a0 a1, got %q", got)
	}
}

func TestRefInvalidatedOnRelease(t *testing.T) {
	p := newDummyPool()
	a, _ := p.Acquire("e")
	ref := NewRef(a)
	if got, ok := ref.Get(); !ok || got != a {
		t.Fatal("Expected live ref")
	}
	_ = p.Release(a)
	if _, ok := ref.Get(); ok {
		t.Error("Expected ref invalid after release")
	}
	b, _ := p.Acquire("e")
	if b != a {
		t.Fatal("Expected reuse")
	}
	if _, ok := ref.Get(); ok {
		t.Error("Expected ref invalid on new lease")
	}
	var empty Ref[*dummy]
	if _, ok := empty.Get(); ok || empty.IsSet() {
		t.Error("Expected zero ref to be empty")
	}
}
