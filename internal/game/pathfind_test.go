package game

import (
	"errors"
	"math/rand"
	"testing"
)

func checkPathShape(t *testing.T, m *BattleMap, p *Path, start, end Position) {
	t.Helper()
	if p.Steps[0] != start || p.End() != end {
		t.Fatalf("path runs %s -> %s, want %s -> %s", p.Steps[0], p.End(), start, end)
	}
	cost := 0
	for i := 1; i < len(p.Steps); i++ {
		if Manhattan(p.Steps[i-1], p.Steps[i]) != 1 {
			t.Fatalf("step %d: %s -> %s is not orthogonal", i, p.Steps[i-1], p.Steps[i])
		}
		if !m.grid.Passable(p.Steps[i]) {
			t.Fatalf("step %d enters impassable %s", i, p.Steps[i])
		}
		cost += m.grid.MoveCost(p.Steps[i])
	}
	if cost != p.Cost {
		t.Fatalf("path cost = %d, steps sum to %d", p.Cost, cost)
	}
}

func TestFindPath_Straight(t *testing.T) {
	m := newTestMap(t, 10, 3)
	p, err := m.FindPath(Pos(0, 1), Pos(9, 1), 20)
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("expected a path on open grid")
	}
	checkPathShape(t, m, p, Pos(0, 1), Pos(9, 1))
	if p.Cost != 9 || p.Len() != 10 {
		t.Fatalf("cost=%d len=%d, want 9 and 10", p.Cost, p.Len())
	}
}

func TestFindPath_AroundWall(t *testing.T) {
	// Wall splits the map with a gap at the bottom.
	g := mustGrid(t, 7, 5)
	g.FillRect(3, 0, 1, 4, TerrainWall)
	m := NewBattleMap(g, WithLogger(quietLogger()))
	p, err := m.FindPath(Pos(0, 0), Pos(6, 0), 30)
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("expected a path routing around the wall")
	}
	checkPathShape(t, m, p, Pos(0, 0), Pos(6, 0))
	if p.Cost != 14 {
		t.Fatalf("cost = %d, want 14", p.Cost)
	}
	// One short of the detour is not enough.
	if p, _ := m.FindPath(Pos(0, 0), Pos(6, 0), 13); p != nil {
		t.Fatalf("budget 13 should not reach, got cost %d", p.Cost)
	}
}

func TestFindPath_AvoidsExpensiveTerrain(t *testing.T) {
	//   y=0: S M M E
	//   y=1: . . . .
	g := mustGrid(t, 4, 2)
	_ = g.SetTerrain(Pos(1, 0), TerrainMountain)
	_ = g.SetTerrain(Pos(2, 0), TerrainMountain)
	m := NewBattleMap(g, WithLogger(quietLogger()))
	p, err := m.FindPath(Pos(0, 0), Pos(3, 0), 10)
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Cost != 5 {
		t.Fatalf("path = %+v, want cost 5 via lower row", p)
	}
	checkPathShape(t, m, p, Pos(0, 0), Pos(3, 0))
}

func TestFindPath_NoPath(t *testing.T) {
	g := mustGrid(t, 5, 5)
	g.FillRect(2, 0, 1, 5, TerrainWater)
	m := NewBattleMap(g, WithLogger(quietLogger()))
	p, err := m.FindPath(Pos(0, 0), Pos(4, 4), 100)
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatal("expected nil path across the river")
	}
	if p, _ := m.FindPath(Pos(0, 0), Pos(2, 2), 100); p != nil {
		t.Fatal("expected nil path into water")
	}
}

func TestFindPath_InvalidEndpoints(t *testing.T) {
	m := newTestMap(t, 4, 4)
	for _, pair := range [][2]Position{
		{Pos(-1, 0), Pos(2, 2)},
		{Pos(0, 0), Pos(4, 0)},
		{Pos(9, 9), Pos(9, 9)},
	} {
		p, err := m.FindPath(pair[0], pair[1], 10)
		if err != nil {
			t.Fatalf("FindPath(%s, %s) err = %v, want nil", pair[0], pair[1], err)
		}
		if p != nil {
			t.Fatalf("FindPath(%s, %s) should return no path", pair[0], pair[1])
		}
	}
}

func TestFindPath_NegativeBudget(t *testing.T) {
	m := newTestMap(t, 4, 4)
	if _, err := m.FindPath(Pos(0, 0), Pos(1, 0), -1); !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("err = %v, want ErrInvalidBudget", err)
	}
	if _, err := m.PathFor(Unit{ID: 1, Pos: Pos(0, 0), Movement: -2}, Pos(1, 0)); !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("PathFor err = %v, want ErrInvalidBudget", err)
	}
}

func TestFindPath_StartEqualsGoal(t *testing.T) {
	m := newTestMap(t, 4, 4)
	p, err := m.FindPath(Pos(2, 2), Pos(2, 2), 0)
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Len() != 1 || p.Cost != 0 {
		t.Fatalf("path = %+v, want single cell at cost 0", p)
	}
}

func TestFindPath_OccupiedCells(t *testing.T) {
	m := newTestMap(t, 5, 1)
	mover := Unit{ID: 1, Pos: Pos(0, 0), Movement: 10}
	_ = m.AddUnit(mover)
	_ = m.AddUnit(Unit{ID: 2, Pos: Pos(2, 0)})

	// Cannot pass through the unit at (2,0) on a 1-wide strip.
	if p, _ := m.FindPath(Pos(0, 0), Pos(4, 0), 10); p != nil {
		t.Fatal("path should not cross an occupied cell")
	}
	// Cannot end on it either.
	if p, _ := m.PathFor(mover, Pos(2, 0)); p != nil {
		t.Fatal("path should not end on an occupied cell")
	}
	// The mover's own cell is not an obstacle.
	p, err := m.PathFor(mover, Pos(1, 0))
	if err != nil || p == nil || p.Cost != 1 {
		t.Fatalf("PathFor(1,0) = %+v, %v", p, err)
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	m, err := NewScenario(
		WithMapSize(20, 15),
		WithSeed(3),
		WithScatter(TerrainForest, 0.3),
		WithScenarioLogger(quietLogger()),
	).Build()
	if err != nil {
		t.Fatal(err)
	}
	p1, _ := m.FindPath(Pos(0, 0), Pos(19, 14), 200)
	p2, _ := m.FindPath(Pos(0, 0), Pos(19, 14), 200)
	if p1 == nil || p2 == nil {
		t.Fatal("expected paths on a forest-only map")
	}
	if len(p1.Steps) != len(p2.Steps) {
		t.Fatalf("path lengths differ between identical calls: %d vs %d", len(p1.Steps), len(p2.Steps))
	}
	for i := range p1.Steps {
		if p1.Steps[i] != p2.Steps[i] {
			t.Fatalf("paths diverge at step %d", i)
		}
	}
}

func TestFindPath_AgreesWithMovementCosts(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	kinds := Terrains()
	for trial := 0; trial < 30; trial++ {
		w, h := 4+rng.Intn(8), 4+rng.Intn(8)
		g := mustGrid(t, w, h)
		for i := range g.tiles {
			g.tiles[i].Terrain = kinds[rng.Intn(len(kinds))]
		}
		mover := Unit{ID: 1, Pos: Pos(rng.Intn(w), rng.Intn(h)), Movement: 2 + rng.Intn(8)}
		g.tiles[g.index(mover.Pos)].Terrain = TerrainPlain
		m := NewBattleMap(g, WithLogger(quietLogger()))
		if err := m.AddUnit(mover); err != nil {
			t.Fatal(err)
		}
		for id := UnitID(2); id < 5; id++ {
			_ = m.AddUnit(Unit{ID: id, Pos: Pos(rng.Intn(w), rng.Intn(h))})
		}
		reach, err := m.MovementCosts(mover)
		if err != nil {
			t.Fatal(err)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				end := Pos(x, y)
				p, err := m.PathFor(mover, end)
				if err != nil {
					t.Fatal(err)
				}
				c, ok := reach.Cost(end)
				if ok != (p != nil) {
					t.Fatalf("trial %d: %s reachable=%v but path=%v", trial, end, ok, p != nil)
				}
				if p == nil {
					continue
				}
				if p.Cost != c {
					t.Fatalf("trial %d: path cost to %s = %d, range cost %d", trial, end, p.Cost, c)
				}
				checkPathShape(t, m, p, mover.Pos, end)
			}
		}
	}
}
