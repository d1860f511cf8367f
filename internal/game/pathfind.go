package game

import (
	"fmt"

	"github.com/zyedidia/generic/heap"
)

// Path is an ordered walk from start to end inclusive.
type Path struct {
	Steps []Position
	Cost  int // sum of the move costs of every entered cell
}

// Len returns the number of cells on the path, start included.
func (p *Path) Len() int { return len(p.Steps) }

// End returns the last cell of the path.
func (p *Path) End() Position { return p.Steps[len(p.Steps)-1] }

// FindPath returns the cheapest orthogonal path from start to end costing at
// most maxCost, or nil when end is unreachable within the budget or either
// endpoint is off the grid. Blocking follows MovementRange: impassable
// terrain and cells held by any unit other than the one standing on start
// cannot be entered.
func (m *BattleMap) FindPath(start, end Position, maxCost int) (*Path, error) {
	if maxCost < 0 {
		return nil, fmt.Errorf("find path %s -> %s: %w: %d", start, end, ErrInvalidBudget, maxCost)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	self, hasSelf := m.occ.At(start)
	return m.astar(start, end, maxCost, self, hasSelf), nil
}

// PathFor is FindPath from u's current cell using its movement points.
func (m *BattleMap) PathFor(u Unit, end Position) (*Path, error) {
	if u.Movement < 0 {
		return nil, fmt.Errorf("path for unit %d: %w: %d", u.ID, ErrInvalidBudget, u.Movement)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	start, onMap := m.resolveMover(u)
	return m.astar(start, end, u.Movement, u.ID, onMap), nil
}

// astar is the budgeted A* search. Every step costs at least 1, so Manhattan
// distance never overestimates and nodes with g+h > budget can be pruned.
func (m *BattleMap) astar(start, end Position, budget int, self UnitID, hasSelf bool) *Path {
	g := m.grid
	if !g.IsValid(start) || !g.IsValid(end) {
		return nil
	}
	if start == end {
		return &Path{Steps: []Position{start}}
	}
	if !m.enterable(end, self, hasSelf) || Manhattan(start, end) > budget {
		return nil
	}

	n := g.Width * g.Height
	gScore := make([]int, n)
	came := make([]int, n)
	for i := range gScore {
		gScore[i] = -1
		came[i] = -1
	}
	closed := make([]bool, n)

	si, ei := g.index(start), g.index(end)
	gScore[si] = 0
	open := heap.New[frontierNode](frontierLess)
	open.Push(frontierNode{idx: si, f: Manhattan(start, end), x: start.X, y: start.Y})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed[cur.idx] || cur.cost > gScore[cur.idx] {
			continue
		}
		if cur.idx == ei {
			return m.buildPath(came, ei, cur.cost)
		}
		closed[cur.idx] = true

		for _, d := range dirs4 {
			np := Position{X: cur.x + d[0], Y: cur.y + d[1]}
			if !g.IsValid(np) {
				continue
			}
			ni := g.index(np)
			if closed[ni] || !m.enterable(np, self, hasSelf) {
				continue
			}
			ng := cur.cost + g.MoveCost(np)
			f := ng + Manhattan(np, end)
			if f > budget {
				continue
			}
			if gScore[ni] >= 0 && ng >= gScore[ni] {
				continue
			}
			gScore[ni] = ng
			came[ni] = cur.idx
			open.Push(frontierNode{idx: ni, cost: ng, f: f, x: np.X, y: np.Y})
		}
	}
	return nil
}

func (m *BattleMap) buildPath(came []int, end, cost int) *Path {
	var steps []Position
	for i := end; i >= 0; i = came[i] {
		steps = append(steps, m.grid.positionAt(i))
	}
	// Reverse
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return &Path{Steps: steps, Cost: cost}
}
