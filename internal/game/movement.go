package game

import (
	"fmt"

	"github.com/zyedidia/generic/heap"
)

// frontierNode is one entry of the search frontier. Stale entries (cost
// greater than the best known cost of the cell) are skipped on pop.
type frontierNode struct {
	idx  int
	cost int
	f    int // cost + heuristic; equal to cost for plain Dijkstra
	x, y int
}

// frontierLess orders by f, then by cost descending (deeper first on ties),
// then row-major, so searches are deterministic.
func frontierLess(a, b frontierNode) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	if a.cost != b.cost {
		return a.cost > b.cost
	}
	if a.y != b.y {
		return a.y < b.y
	}
	return a.x < b.x
}

// RangeResult is the set of cells reachable within a budget, each with the
// minimal accumulated cost found to reach it.
type RangeResult struct {
	Origin Position
	Budget int
	costs  map[Position]int
}

// Contains reports whether p is reachable.
func (r *RangeResult) Contains(p Position) bool {
	_, ok := r.costs[p]
	return ok
}

// Cost returns the minimal cost to reach p.
func (r *RangeResult) Cost(p Position) (int, bool) {
	c, ok := r.costs[p]
	return c, ok
}

// Len returns the number of reachable cells, origin included.
func (r *RangeResult) Len() int { return len(r.costs) }

// Positions returns the reachable cells as a set.
func (r *RangeResult) Positions() PositionSet {
	s := NewPositionSet()
	for p := range r.costs {
		s.Put(p)
	}
	return s
}

// enterable reports whether the mover self may step onto p. Occupied cells
// block entry and pass-through for every team; the mover's own cell never
// blocks itself.
func (m *BattleMap) enterable(p Position, self UnitID, hasSelf bool) bool {
	if !m.grid.Passable(p) {
		return false
	}
	if holder, ok := m.occ.At(p); ok && (!hasSelf || holder != self) {
		return false
	}
	return true
}

// reachable runs the budgeted cost-relaxation search from start. dist holds
// the best cost per grid index (-1 = unreached); every finalized cell has
// dist <= budget.
func (m *BattleMap) reachable(start Position, budget int, self UnitID, hasSelf bool) []int {
	g := m.grid
	dist := make([]int, g.Width*g.Height)
	for i := range dist {
		dist[i] = -1
	}
	done := make([]bool, len(dist))

	si := g.index(start)
	dist[si] = 0
	open := heap.New[frontierNode](frontierLess)
	open.Push(frontierNode{idx: si, x: start.X, y: start.Y})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if done[cur.idx] || cur.cost > dist[cur.idx] {
			continue
		}
		done[cur.idx] = true

		for _, d := range dirs4 {
			np := Position{X: cur.x + d[0], Y: cur.y + d[1]}
			if !g.IsValid(np) {
				continue
			}
			ni := g.index(np)
			if done[ni] || !m.enterable(np, self, hasSelf) {
				continue
			}
			nc := cur.cost + g.MoveCost(np)
			if nc > budget {
				continue
			}
			if dist[ni] >= 0 && nc >= dist[ni] {
				continue
			}
			dist[ni] = nc
			open.Push(frontierNode{idx: ni, cost: nc, f: nc, x: np.X, y: np.Y})
		}
	}
	return dist
}

// resolveMover returns where u actually stands: the map's record when u is
// on the map, otherwise u.Pos.
func (m *BattleMap) resolveMover(u Unit) (Position, bool) {
	if p, ok := m.occ.PositionOf(u.ID); ok {
		return p, true
	}
	return u.Pos, false
}

// MovementCosts computes every cell u can reach this turn together with the
// minimal cost of reaching it.
func (m *BattleMap) MovementCosts(u Unit) (*RangeResult, error) {
	if u.Movement < 0 {
		return nil, fmt.Errorf("movement range of unit %d: %w: %d", u.ID, ErrInvalidBudget, u.Movement)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	start, onMap := m.resolveMover(u)
	if !m.grid.IsValid(start) {
		return nil, fmt.Errorf("movement range of unit %d from %s: %w", u.ID, start, ErrOutOfBounds)
	}
	dist := m.reachable(start, u.Movement, u.ID, onMap)
	res := &RangeResult{Origin: start, Budget: u.Movement, costs: make(map[Position]int)}
	for i, c := range dist {
		if c >= 0 {
			res.costs[m.grid.positionAt(i)] = c
		}
	}
	return res, nil
}

// MovementRange returns the cells u can move to this turn, its own cell
// included.
func (m *BattleMap) MovementRange(u Unit) (PositionSet, error) {
	r, err := m.MovementCosts(u)
	if err != nil {
		return PositionSet{}, err
	}
	return r.Positions(), nil
}
