// pkg/hexmap/pathfinding.go
package hexmap

import "container/heap"

// shortestPath ищет путь A* из start в goal, ступая только на клетки
// с дорожками lanes. Возвращает гексы от start до goal включительно
// или nil, если goal недостижим. При равной оценке раньше раскрывается
// клетка, попавшая во фронт раньше, так что маршрут детерминирован.
func shortestPath(m *Map, start, goal Hex, lanes LaneMask) []Hex {
	cameFrom := map[Hex]Hex{start: start}
	cost := map[Hex]int{start: 0}

	var open frontier
	heap.Push(&open, step{hex: start, priority: start.Distance(goal)})

	for open.Len() > 0 {
		cur := heap.Pop(&open).(step).hex
		if cur == goal {
			return walkBack(cameFrom, start, goal)
		}
		for _, n := range cur.Neighbors(m) {
			if !m.IsPassable(n, lanes) {
				continue
			}
			c := cost[cur] + 1
			if old, seen := cost[n]; seen && old <= c {
				continue
			}
			cost[n] = c
			cameFrom[n] = cur
			heap.Push(&open, step{hex: n, priority: c + n.Distance(goal), seq: open.pushed})
		}
	}
	return nil
}

func walkBack(cameFrom map[Hex]Hex, start, goal Hex) []Hex {
	var rev []Hex
	for h := goal; h != start; h = cameFrom[h] {
		rev = append(rev, h)
	}
	rev = append(rev, start)
	path := make([]Hex, len(rev))
	for i, h := range rev {
		path[len(rev)-1-i] = h
	}
	return path
}

type step struct {
	hex      Hex
	priority int
	seq      int
}

// frontier — мин-куча шагов A* по (priority, seq).
type frontier struct {
	items  []step
	pushed int
}

func (f *frontier) Len() int { return len(f.items) }
func (f *frontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}
func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) {
	f.items = append(f.items, x.(step))
	f.pushed++
}

func (f *frontier) Pop() any {
	last := f.items[len(f.items)-1]
	f.items = f.items[:len(f.items)-1]
	return last
}
