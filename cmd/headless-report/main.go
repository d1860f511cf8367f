package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Garsondee/tactics-grid/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	cols, rows  int
	composition map[game.Terrain]int

	units      int
	rangeSizes []int

	rangeTime  time.Duration
	attackTime time.Duration
	threatTime time.Duration
	pathTime   time.Duration
	queryTime  time.Duration

	threatPlayer int
	threatEnemy  int

	pathChecks     int
	pathMismatches int
	unreachable    int

	queryMatches int

	spawns     int
	moves      int
	rejects    int
	moveErrors int
}

func main() {
	var cols, rows int
	var runs int
	var units int
	var seedBase int64
	var terrainPath string
	var query string
	var verbose bool

	flag.IntVar(&cols, "cols", 32, "map width in cells")
	flag.IntVar(&rows, "rows", 24, "map height in cells")
	flag.IntVar(&runs, "runs", 5, "number of seeded maps to build")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.IntVar(&units, "units", 12, "units per map, alternating player and enemy")
	flag.StringVar(&terrainPath, "terrain", "", "optional YAML terrain table")
	flag.StringVar(&query, "query", `Terrain == "forest"`, "tile query evaluated on every map")
	flag.BoolVar(&verbose, "v", false, "log map mutations to stderr")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if cols <= 0 || rows <= 0 {
		fmt.Println("error: -cols and -rows must be > 0")
		return
	}

	table := game.DefaultTerrainTable()
	if terrainPath != "" {
		tt, err := game.LoadTerrainTable(terrainPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		table = tt
	}
	tq, err := game.CompileTileQuery(query)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	fmt.Printf("=== Headless Grid Report ===\n")
	fmt.Printf("map=%dx%d runs=%d units=%d seed_base=%d query=%q\n\n", cols, rows, runs, units, seedBase, query)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)
		stats, err := runScenario(i+1, seed, cols, rows, units, table, tq, logger)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runScenario(runIndex int, seed int64, cols, rows, units int, table *game.TerrainTable, tq *game.TileQuery, logger *slog.Logger) (runStats, error) {
	j := game.NewJournal(true)
	m, err := game.NewScenario(
		game.WithMapSize(cols, rows),
		game.WithSeed(seed),
		game.WithTerrainTable(table),
		game.WithScatter(game.TerrainForest, 0.18),
		game.WithScatter(game.TerrainMountain, 0.06),
		game.WithScatter(game.TerrainWater, 0.05),
		game.WithTerrainRect(0, rows/2, cols, 1, game.TerrainRoad),
		game.WithRandomUnits(units, 1, 5, 1, 2),
		game.WithScenarioLogger(logger),
		game.WithScenarioJournal(j),
	).Build()
	if err != nil {
		return runStats{}, err
	}

	rs := runStats{
		runIndex:    runIndex,
		seed:        seed,
		cols:        cols,
		rows:        rows,
		composition: map[game.Terrain]int{},
	}
	for _, t := range game.Terrains() {
		rs.composition[t] = len(m.FilterTerrain(t))
	}

	all := m.Units()
	rs.units = len(all)
	ranges := make(map[game.UnitID]*game.RangeResult, len(all))

	start := time.Now()
	for _, u := range all {
		r, err := m.MovementCosts(u)
		if err != nil {
			return runStats{}, err
		}
		ranges[u.ID] = r
		rs.rangeSizes = append(rs.rangeSizes, r.Len())
	}
	rs.rangeTime = time.Since(start)

	start = time.Now()
	for _, u := range all {
		if _, err := m.AttackRange(u); err != nil {
			return runStats{}, err
		}
	}
	rs.attackTime = time.Since(start)

	start = time.Now()
	zp, err := m.ThreatZone(game.TeamPlayer)
	if err != nil {
		return runStats{}, err
	}
	ze, err := m.ThreatZone(game.TeamEnemy)
	if err != nil {
		return runStats{}, err
	}
	rs.threatTime = time.Since(start)
	rs.threatPlayer = zp.Size()
	rs.threatEnemy = ze.Size()

	// Path to the costliest reachable cell must cost what the range search said.
	start = time.Now()
	for _, u := range all {
		r := ranges[u.ID]
		goal, want := farthest(r)
		p, err := m.PathFor(u, goal)
		if err != nil {
			return runStats{}, err
		}
		rs.pathChecks++
		switch {
		case p == nil:
			rs.unreachable++
		case p.Cost != want:
			rs.pathMismatches++
		}
	}
	rs.pathTime = time.Since(start)

	start = time.Now()
	hits, err := m.FindTiles(tq)
	if err != nil {
		return runStats{}, err
	}
	rs.queryTime = time.Since(start)
	rs.queryMatches = len(hits)

	// Walk every unit one step toward its farthest cell to exercise the journal.
	// Earlier steps can claim a cell a later unit planned to enter; those
	// moves are refused and counted.
	for _, u := range all {
		goal, _ := farthest(ranges[u.ID])
		p, err := m.PathFor(u, goal)
		if err != nil {
			return runStats{}, err
		}
		if p == nil || p.Len() < 2 {
			continue
		}
		if err := m.MoveUnit(u.ID, p.Steps[1]); err != nil {
			rs.moveErrors++
			logger.Warn("step rejected", "id", u.ID, "to", p.Steps[1], "error", err)
		}
	}

	rs.spawns = j.Count(game.JournalUnit, "spawn")
	rs.moves = j.Count(game.JournalUnit, "move")
	rs.rejects = j.Count("", "reject")
	return rs, nil
}

// farthest returns the reachable cell with the highest cost, breaking ties
// by row-major order.
func farthest(r *game.RangeResult) (game.Position, int) {
	best, bestCost := r.Origin, 0
	for _, p := range game.SortedPositions(r.Positions()) {
		if c, _ := r.Cost(p); c > bestCost {
			best, bestCost = p, c
		}
	}
	return best, bestCost
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("composition: %s\n", formatComposition(rs.composition))
	mean, maxSize := rangeSummary(rs.rangeSizes)
	fmt.Printf("movement_range: units=%d mean=%.1f max=%d time=%s\n", rs.units, mean, maxSize, rs.rangeTime)
	fmt.Printf("attack_range: time=%s\n", rs.attackTime)
	cells := rs.cols * rs.rows
	fmt.Printf("threat_zone: vs_player=%d (%.1f%%) vs_enemy=%d (%.1f%%) time=%s\n",
		rs.threatPlayer, pct(rs.threatPlayer, cells), rs.threatEnemy, pct(rs.threatEnemy, cells), rs.threatTime)
	fmt.Printf("path_checks: total=%d mismatches=%d unreachable=%d time=%s\n",
		rs.pathChecks, rs.pathMismatches, rs.unreachable, rs.pathTime)
	fmt.Printf("tile_query: matches=%d time=%s\n", rs.queryMatches, rs.queryTime)
	fmt.Printf("journal: spawn=%d move=%d reject=%d move_errors=%d\n", rs.spawns, rs.moves, rs.rejects, rs.moveErrors)
	fmt.Println()
}

func printAggregate(all []runStats) {
	var sizes []int
	totalMismatch := 0
	totalUnreachable := 0
	totalThreat := 0
	totalCells := 0
	var rangeTime, pathTime, queryTime time.Duration
	for _, rs := range all {
		sizes = append(sizes, rs.rangeSizes...)
		totalMismatch += rs.pathMismatches
		totalUnreachable += rs.unreachable
		totalThreat += rs.threatPlayer + rs.threatEnemy
		totalCells += 2 * rs.cols * rs.rows
		rangeTime += rs.rangeTime
		pathTime += rs.pathTime
		queryTime += rs.queryTime
	}
	mean, maxSize := rangeSummary(sizes)

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("movement_range: mean=%.1f max=%d avg_time=%s\n", mean, maxSize, avgDuration(rangeTime, len(all)))
	fmt.Printf("threat_coverage=%.1f%%\n", pct(totalThreat, totalCells))
	fmt.Printf("path_checks: mismatches=%d unreachable=%d avg_time=%s\n", totalMismatch, totalUnreachable, avgDuration(pathTime, len(all)))
	fmt.Printf("tile_query: avg_time=%s\n", avgDuration(queryTime, len(all)))
	if totalMismatch > 0 || totalUnreachable > 0 {
		fmt.Println("WARNING: pathfinder disagrees with movement range")
	}
}

func formatComposition(c map[game.Terrain]int) string {
	kinds := make([]game.Terrain, 0, len(c))
	for t := range c {
		kinds = append(kinds, t)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	parts := make([]string, 0, len(kinds))
	for _, t := range kinds {
		if c[t] == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", t, c[t]))
	}
	return strings.Join(parts, " ")
}

func rangeSummary(sizes []int) (float64, int) {
	if len(sizes) == 0 {
		return 0, 0
	}
	sum, maxSize := 0, 0
	for _, s := range sizes {
		sum += s
		if s > maxSize {
			maxSize = s
		}
	}
	return float64(sum) / float64(len(sizes)), maxSize
}

func pct(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func avgDuration(total time.Duration, n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return total / time.Duration(n)
}
