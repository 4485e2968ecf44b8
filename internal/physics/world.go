// internal/physics/world.go
package physics

import (
	"sort"

	"github.com/jakecoffman/cp"
)

// Категории коллайдеров.
const (
	CategoryEnemy uint = 1 << 0
	CategoryTower uint = 1 << 1
)

// Все коллайдеры симуляции в одной группе: друг с другом они не сталкиваются,
// пространство используется только для запросов.
const simulationGroup uint = 1

// Collider — круглый кинематический коллайдер с владельцем.
type Collider struct {
	world    *World
	body     *cp.Body
	shape    *cp.Shape
	category uint
	radius   float64
	enabled  bool
	Owner    interface{}
}

func (c *Collider) Position() cp.Vector { return c.body.Position() }
func (c *Collider) Radius() float64     { return c.radius }
func (c *Collider) Enabled() bool       { return c.enabled }
func (c *Collider) Category() uint      { return c.category }

// SetPosition двигает коллайдер; индекс обновляется в World.Step.
func (c *Collider) SetPosition(p cp.Vector) {
	c.body.SetPosition(p)
}

// Place переносит коллайдер и сразу переиндексирует его.
// Нужен при спавне, чтобы коллайдер находился запросами до следующего Step.
func (c *Collider) Place(p cp.Vector) {
	space := c.world.space
	space.RemoveShape(c.shape)
	c.body.SetPosition(p)
	space.AddShape(c.shape)
}

func (c *Collider) SetEnabled(enabled bool) {
	c.enabled = enabled
	if enabled {
		c.shape.SetFilter(cp.ShapeFilter{Group: simulationGroup, Categories: c.category, Mask: cp.ALL_CATEGORIES})
	} else {
		c.shape.SetFilter(cp.SHAPE_FILTER_NONE)
	}
}

// World — пространство cp для поиска целей, всплеска урона и попаданий снарядов.
type World struct {
	space     *cp.Space
	colliders map[*cp.Shape]*Collider
}

func NewWorld() *World {
	return &World{
		space:     cp.NewSpace(),
		colliders: make(map[*cp.Shape]*Collider),
	}
}

// AddCircle создаёт включённый коллайдер.
func (w *World) AddCircle(owner interface{}, category uint, radius float64, pos cp.Vector) *Collider {
	body := w.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	c := &Collider{
		world:    w,
		body:     body,
		shape:    shape,
		category: category,
		radius:   radius,
		Owner:    owner,
	}
	shape.UserData = c
	c.SetEnabled(true)
	w.space.AddShape(shape)
	w.colliders[shape] = c
	return c
}

// Remove удаляет коллайдер из пространства.
func (w *World) Remove(c *Collider) {
	if _, ok := w.colliders[c.shape]; !ok {
		return
	}
	delete(w.colliders, c.shape)
	w.space.RemoveShape(c.shape)
	w.space.RemoveBody(c.body)
}

func (w *World) Len() int { return len(w.colliders) }

// Step переиндексирует сдвинутые коллайдеры.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		dt = 1e-6
	}
	w.space.Step(dt)
}

// Hit — результат запроса.
type Hit struct {
	Collider *Collider
	Distance float64 // от центра запроса до центра коллайдера
}

func queryFilter(category uint) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: category}
}

func (w *World) query(center cp.Vector, radius float64, category uint, accept func(c *Collider, dist float64) bool) []Hit {
	var hits []Hit
	bb := cp.NewBBForCircle(center, radius)
	w.space.BBQuery(bb, queryFilter(category), func(shape *cp.Shape, _ interface{}) {
		c, ok := shape.UserData.(*Collider)
		if !ok || !c.enabled || c.category&category == 0 {
			return
		}
		dist := center.Distance(c.Position())
		if accept(c, dist) {
			hits = append(hits, Hit{Collider: c, Distance: dist})
		}
	}, nil)
	return hits
}

// Within возвращает коллайдеры, центр которых не дальше radius от center.
// Порядок — порядок обхода индекса, не по расстоянию.
func (w *World) Within(center cp.Vector, radius float64, category uint) []Hit {
	return w.query(center, radius, category, func(_ *Collider, dist float64) bool {
		return dist <= radius
	})
}

// Overlapping возвращает коллайдеры, круг которых пересекает круг (center, radius).
func (w *World) Overlapping(center cp.Vector, radius float64, category uint) []Hit {
	return w.query(center, radius, category, func(c *Collider, dist float64) bool {
		return dist <= radius+c.radius
	})
}

// SegmentHit — коллайдер на отрезке: точка входа и доля пути от start (0..1).
type SegmentHit struct {
	Collider *Collider
	Point    cp.Vector
	Alpha    float64
}

// Segment возвращает все коллайдеры на отрезке start→end толщиной radius,
// в порядке от start к end.
func (w *World) Segment(start, end cp.Vector, radius float64, category uint) []SegmentHit {
	var hits []SegmentHit
	w.space.SegmentQuery(start, end, radius, queryFilter(category), func(shape *cp.Shape, point, _ cp.Vector, alpha float64, _ interface{}) {
		c, ok := shape.UserData.(*Collider)
		if !ok || !c.enabled {
			return
		}
		hits = append(hits, SegmentHit{Collider: c, Point: point, Alpha: alpha})
	}, nil)
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Alpha < hits[j].Alpha })
	return hits
}

// SegmentFirst возвращает ближайший к start коллайдер на отрезке.
func (w *World) SegmentFirst(start, end cp.Vector, radius float64, category uint) (*Collider, cp.Vector, bool) {
	hits := w.Segment(start, end, radius, category)
	if len(hits) == 0 {
		return nil, cp.Vector{}, false
	}
	return hits[0].Collider, hits[0].Point, true
}
