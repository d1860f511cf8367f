package game

import (
	"fmt"
	"log/slog"
	"math/rand"
)

// Scenario describes a battle map to build: dimensions, terrain edits and
// units. It is used by tests and by the headless report.
type Scenario struct {
	Width   int
	Height  int
	Table   *TerrainTable
	Logger  *slog.Logger
	Journal *Journal

	rng     *rand.Rand
	terrain []func(*Grid, *rand.Rand) error
	units   []Unit
}

// scenarioOptionKind controls the pass in which an option is applied.
type scenarioOptionKind int

const (
	scenarioOptInfra   scenarioOptionKind = iota // size, seed, table, logging
	scenarioOptTerrain                           // terrain edits, after the grid exists
	scenarioOptUnit                              // unit spawns, last
)

// ScenarioOption is a builder function applied to a Scenario.
type ScenarioOption struct {
	kind scenarioOptionKind
	fn   func(*Scenario)
}

// WithMapSize sets the grid dimensions.
func WithMapSize(w, h int) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(s *Scenario) {
		s.Width = w
		s.Height = h
	}}
}

// WithSeed sets the RNG seed used by scatter options.
func WithSeed(seed int64) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(s *Scenario) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- map generation, not security
	}}
}

// WithTerrainTable replaces the default terrain table.
func WithTerrainTable(tt *TerrainTable) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(s *Scenario) {
		s.Table = tt
	}}
}

// WithScenarioLogger routes map mutation logs to l.
func WithScenarioLogger(l *slog.Logger) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(s *Scenario) {
		s.Logger = l
	}}
}

// WithScenarioJournal attaches a mutation journal to the built map.
func WithScenarioJournal(j *Journal) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(s *Scenario) {
		s.Journal = j
	}}
}

// WithTerrainRect fills a rectangle with terrain t.
func WithTerrainRect(x, y, w, h int, t Terrain) ScenarioOption {
	return ScenarioOption{scenarioOptTerrain, func(s *Scenario) {
		s.terrain = append(s.terrain, func(g *Grid, _ *rand.Rand) error {
			g.FillRect(x, y, w, h, t)
			return nil
		})
	}}
}

// WithTerrainAt sets single cells to terrain t. An off-grid cell fails Build.
func WithTerrainAt(t Terrain, ps ...Position) ScenarioOption {
	return ScenarioOption{scenarioOptTerrain, func(s *Scenario) {
		s.terrain = append(s.terrain, func(g *Grid, _ *rand.Rand) error {
			for _, p := range ps {
				if err := g.SetTerrain(p, t); err != nil {
					return err
				}
			}
			return nil
		})
	}}
}

// WithElevation raises single cells to elevation e. An off-grid cell fails
// Build.
func WithElevation(e int, ps ...Position) ScenarioOption {
	return ScenarioOption{scenarioOptTerrain, func(s *Scenario) {
		s.terrain = append(s.terrain, func(g *Grid, _ *rand.Rand) error {
			for _, p := range ps {
				if err := g.SetElevation(p, e); err != nil {
					return err
				}
			}
			return nil
		})
	}}
}

// WithScatter turns each cell into terrain t with probability p.
func WithScatter(t Terrain, p float64) ScenarioOption {
	return ScenarioOption{scenarioOptTerrain, func(s *Scenario) {
		s.terrain = append(s.terrain, func(g *Grid, rng *rand.Rand) error {
			for i := range g.tiles {
				if rng.Float64() < p {
					g.tiles[i].Terrain = t
				}
			}
			return nil
		})
	}}
}

// WithUnit spawns u when the map is built.
func WithUnit(u Unit) ScenarioOption {
	return ScenarioOption{scenarioOptUnit, func(s *Scenario) {
		s.units = append(s.units, u)
	}}
}

// WithRandomUnits spawns n units on random passable, free cells, alternating
// player and enemy teams. IDs start at firstID.
func WithRandomUnits(n int, firstID UnitID, movement, minR, maxR int) ScenarioOption {
	return ScenarioOption{scenarioOptUnit, func(s *Scenario) {
		for i := 0; i < n; i++ {
			team := TeamPlayer
			if i%2 == 1 {
				team = TeamEnemy
			}
			s.units = append(s.units, Unit{
				ID: firstID + UnitID(i), Team: team,
				Pos:      Position{X: -1, Y: -1}, // placed at build time
				Movement: movement, MinRange: minR, MaxRange: maxR,
			})
		}
	}}
}

// NewScenario applies opts in ordered passes:
//  1. Infrastructure (size, seed, table, logging)
//  2. Terrain edits
//  3. Units
func NewScenario(opts ...ScenarioOption) *Scenario {
	s := &Scenario{
		Width:  16,
		Height: 16,
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- deterministic default
	}
	for _, kind := range []scenarioOptionKind{scenarioOptInfra, scenarioOptTerrain, scenarioOptUnit} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(s)
			}
		}
	}
	return s
}

// Build creates the grid, applies terrain edits in order and spawns units.
// Units with a negative position are placed on a random free passable cell.
// The first rejected terrain edit or spawn is returned.
func (s *Scenario) Build() (*BattleMap, error) {
	g, err := NewGrid(s.Width, s.Height, s.Table)
	if err != nil {
		return nil, err
	}
	for i, edit := range s.terrain {
		if err := edit(g, s.rng); err != nil {
			return nil, fmt.Errorf("terrain edit %d: %w", i+1, err)
		}
	}
	opts := []MapOption{WithLogger(s.Logger)}
	if s.Journal != nil {
		opts = append(opts, WithJournal(s.Journal))
	}
	m := NewBattleMap(g, opts...)
	for _, u := range s.units {
		if u.Pos.X < 0 || u.Pos.Y < 0 {
			p, ok := s.freeCell(m)
			if !ok {
				return nil, fmt.Errorf("place unit %d: no free passable cell", u.ID)
			}
			u.Pos = p
		}
		if err := m.AddUnit(u); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// freeCell picks a random passable unoccupied cell, falling back to a
// row-major scan when random probing keeps missing.
func (s *Scenario) freeCell(m *BattleMap) (Position, bool) {
	free := func(p Position) bool {
		return m.grid.Passable(p) && !m.occ.Occupied(p)
	}
	for try := 0; try < 64; try++ {
		p := Position{X: s.rng.Intn(s.Width), Y: s.rng.Intn(s.Height)}
		if free(p) {
			return p, true
		}
	}
	for i := range m.grid.tiles {
		if p := m.grid.positionAt(i); free(p) {
			return p, true
		}
	}
	return Position{}, false
}
