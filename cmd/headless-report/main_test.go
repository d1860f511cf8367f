package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Garsondee/tactics-grid/internal/game"
)

func TestRangeSummary(t *testing.T) {
	mean, maxSize := rangeSummary([]int{4, 10, 1})
	if mean != 5 || maxSize != 10 {
		t.Fatalf("expected mean=5 max=10, got mean=%.1f max=%d", mean, maxSize)
	}
	if mean, maxSize := rangeSummary(nil); mean != 0 || maxSize != 0 {
		t.Fatalf("expected zeros for no samples, got %.1f %d", mean, maxSize)
	}
}

func TestPct_ZeroWhole(t *testing.T) {
	if got := pct(5, 0); got != 0 {
		t.Fatalf("expected 0, got %.1f", got)
	}
	if got := pct(1, 4); got != 25 {
		t.Fatalf("expected 25, got %.1f", got)
	}
}

func TestFormatComposition_SkipsEmptyKinds(t *testing.T) {
	got := formatComposition(map[game.Terrain]int{
		game.TerrainWater:  3,
		game.TerrainPlain:  10,
		game.TerrainForest: 0,
	})
	if got != "plain=10 water=3" {
		t.Fatalf("unexpected composition line: %q", got)
	}
}

func TestRunScenario_PathsAgreeWithRanges(t *testing.T) {
	tq, err := game.CompileTileQuery(`Terrain == "forest"`)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rs, err := runScenario(1, 42, 20, 14, 8, game.DefaultTerrainTable(), tq, logger)
	if err != nil {
		t.Fatal(err)
	}
	if rs.units != 8 || rs.spawns != 8 {
		t.Fatalf("expected 8 units spawned, got units=%d spawns=%d", rs.units, rs.spawns)
	}
	if rs.pathMismatches != 0 || rs.unreachable != 0 {
		t.Fatalf("pathfinder disagrees with range: mismatches=%d unreachable=%d", rs.pathMismatches, rs.unreachable)
	}
	if rs.moves+rs.moveErrors > rs.units {
		t.Fatalf("at most one step per unit, got moves=%d errors=%d", rs.moves, rs.moveErrors)
	}
	if rs.moveErrors != rs.rejects {
		t.Fatalf("move errors = %d, journal rejects = %d", rs.moveErrors, rs.rejects)
	}
	if rs.queryMatches != rs.composition[game.TerrainForest] {
		t.Fatalf("query matched %d tiles, composition has %d forest", rs.queryMatches, rs.composition[game.TerrainForest])
	}
	total := 0
	for _, n := range rs.composition {
		total += n
	}
	if total != 20*14 {
		t.Fatalf("composition covers %d cells, want %d", total, 20*14)
	}
	if !strings.Contains(formatComposition(rs.composition), "road=") {
		t.Fatal("expected the road row in the composition")
	}
}
