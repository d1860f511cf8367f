package game

import (
	"math/rand"
	"reflect"
	"testing"
)

func randomPositions(rng *rand.Rand, n int) []Position {
	ps := make([]Position, n)
	for i := range ps {
		ps[i] = Pos(rng.Intn(200)-100, rng.Intn(200)-100)
	}
	return ps
}

func TestBatch_DistancesMatchScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ps := randomPositions(rng, 500)
	b := NewPositionBatch(ps)
	target := Pos(7, -3)
	d := b.DistancesTo(target)
	m := b.ManhattanTo(target)
	if len(d) != len(ps) || len(m) != len(ps) {
		t.Fatalf("got %d/%d results for %d positions", len(d), len(m), len(ps))
	}
	for i, p := range ps {
		// Same formula, so results must be bit-identical.
		if d[i] != Distance(p, target) {
			t.Fatalf("DistancesTo[%d] = %v, scalar %v", i, d[i], Distance(p, target))
		}
		if m[i] != Manhattan(p, target) {
			t.Fatalf("ManhattanTo[%d] = %d, scalar %d", i, m[i], Manhattan(p, target))
		}
	}
}

func TestBatch_Empty(t *testing.T) {
	b := NewPositionBatch(nil)
	if b.Len() != 0 {
		t.Fatalf("Len = %d, want 0", b.Len())
	}
	if got := b.DistancesTo(Pos(1, 1)); len(got) != 0 {
		t.Fatalf("DistancesTo on empty batch = %v", got)
	}
	if got := b.ManhattanTo(Pos(1, 1)); len(got) != 0 {
		t.Fatalf("ManhattanTo on empty batch = %v", got)
	}
	if got := b.Select(nil); len(got) != 0 {
		t.Fatalf("Select on empty batch = %v", got)
	}
}

func TestBatch_ManhattanIntoReusesBuffer(t *testing.T) {
	b := NewPositionBatch([]Position{{0, 0}, {3, 4}, {-2, 1}})
	buf := make([]int, 8)
	got := b.ManhattanInto(Pos(1, 1), buf)
	if want := []int{2, 5, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ManhattanInto = %v, want %v", got, want)
	}
	if &got[0] != &buf[0] {
		t.Fatal("ManhattanInto should write into the given buffer")
	}
}

func TestBatch_RoundTrip(t *testing.T) {
	ps := []Position{{1, 2}, {3, 4}, {5, 6}}
	b := NewPositionBatch(ps)
	if !reflect.DeepEqual(b.Positions(), ps) {
		t.Fatalf("Positions() = %v, want %v", b.Positions(), ps)
	}
	if b.At(1) != Pos(3, 4) {
		t.Fatalf("At(1) = %s", b.At(1))
	}
}

func TestBatch_WithinBandMatchesAttackRange(t *testing.T) {
	m := newTestMap(t, 12, 9)
	b := GridBatch(m.grid)
	if b.Len() != 12*9 {
		t.Fatalf("GridBatch len = %d, want %d", b.Len(), 12*9)
	}
	for _, c := range []Position{{0, 0}, {5, 4}, {11, 8}} {
		want, err := m.AttackRangeFrom(c, 1, 3)
		if err != nil {
			t.Fatal(err)
		}
		got := NewPositionSet(b.Select(b.WithinBand(c, 1, 3))...)
		if !SameSet(got, want) {
			t.Fatalf("band from %s: batch %v, ring %v", c, SortedPositions(got), SortedPositions(want))
		}
	}
}

func TestGridBatch_IndexMatchesTiles(t *testing.T) {
	g := mustGrid(t, 4, 3)
	b := GridBatch(g)
	for i := 0; i < b.Len(); i++ {
		if g.index(b.At(i)) != i {
			t.Fatalf("batch %d holds %s, tile index %d", i, b.At(i), g.index(b.At(i)))
		}
	}
}

func TestFilterTerrain_MatchesScan(t *testing.T) {
	m, err := NewScenario(
		WithMapSize(15, 11),
		WithSeed(21),
		WithScatter(TerrainForest, 0.3),
		WithScatter(TerrainWater, 0.1),
		WithScenarioLogger(quietLogger()),
	).Build()
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range []Terrain{TerrainPlain, TerrainForest, TerrainWater, TerrainWall} {
		var want []Position
		for y := 0; y < m.Height(); y++ {
			for x := 0; x < m.Width(); x++ {
				if tile, _ := m.Tile(Pos(x, y)); tile.Terrain == kind {
					want = append(want, Pos(x, y))
				}
			}
		}
		got := m.FilterTerrain(kind)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("FilterTerrain(%s) = %v, want %v", kind, got, want)
		}
		mask := m.grid.TerrainMask(kind)
		if sel := GridBatch(m.grid).Select(mask); !reflect.DeepEqual(sel, want) {
			t.Fatalf("TerrainMask(%s) selects %v, want %v", kind, sel, want)
		}
	}
}
