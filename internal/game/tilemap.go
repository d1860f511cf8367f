package game

import "fmt"

// Tile represents one cell of the battlefield. Gameplay modifiers are never
// stored here; they are derived from Terrain, Elevation and the TerrainTable.
type Tile struct {
	Terrain   Terrain
	Elevation int // >= 0; adds to defence
}

// TileProps are the derived gameplay properties of a tile.
type TileProps struct {
	MoveCost       int
	Defense        int // terrain base + elevation
	Avoid          int
	BlocksMovement bool
	BlocksVision   bool
}

// Props derives the gameplay properties of t from the table.
func (t Tile) Props(tt *TerrainTable) TileProps {
	info := tt.Info(t.Terrain)
	return TileProps{
		MoveCost:       info.MoveCost,
		Defense:        info.Defense + t.Elevation,
		Avoid:          info.Avoid,
		BlocksMovement: info.BlocksMovement,
		BlocksVision:   info.BlocksVision,
	}
}

// Grid is the authoritative per-cell terrain representation. Dimensions are
// fixed for the lifetime of the grid.
type Grid struct {
	Width  int
	Height int
	tiles  []Tile // row-major: index = y*Width + x
	table  *TerrainTable
}

// NewGrid creates a width x height grid of plain tiles at elevation 0.
// A nil table means DefaultTerrainTable.
func NewGrid(width, height int, table *TerrainTable) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if table == nil {
		table = DefaultTerrainTable()
	}
	return &Grid{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
		table:  table,
	}, nil
}

// NewGridFromRows builds a grid from row-major terrain data, one slice per
// row. Every row must have the same non-zero length.
func NewGridFromRows(rows [][]Terrain, table *TerrainTable) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	g, err := NewGrid(len(rows[0]), len(rows), table)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, y, len(row), g.Width)
		}
		for x, t := range row {
			if !t.Valid() {
				return nil, fmt.Errorf("%w: %v at (%d,%d)", ErrUnknownTerrain, t, x, y)
			}
			g.tiles[y*g.Width+x].Terrain = t
		}
	}
	return g, nil
}

// Table returns the terrain table the grid was built with.
func (g *Grid) Table() *TerrainTable { return g.table }

// IsValid reports 0 <= x < Width && 0 <= y < Height.
func (g *Grid) IsValid(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Grid) index(p Position) int { return p.Y*g.Width + p.X }

// positionAt is the inverse of index.
func (g *Grid) positionAt(i int) Position {
	return Position{X: i % g.Width, Y: i / g.Width}
}

// Tile returns the tile at p. The bool is false when p is out of bounds.
func (g *Grid) Tile(p Position) (Tile, bool) {
	if !g.IsValid(p) {
		return Tile{}, false
	}
	return g.tiles[g.index(p)], true
}

// Props returns the derived properties at p, or false when out of bounds.
func (g *Grid) Props(p Position) (TileProps, bool) {
	if !g.IsValid(p) {
		return TileProps{}, false
	}
	return g.tiles[g.index(p)].Props(g.table), true
}

// Passable returns true if a unit may stand on p, ignoring occupancy.
func (g *Grid) Passable(p Position) bool {
	if !g.IsValid(p) {
		return false
	}
	return !g.table.Info(g.tiles[g.index(p)].Terrain).BlocksMovement
}

// MoveCost returns the cost of entering p. Only meaningful when Passable.
func (g *Grid) MoveCost(p Position) int {
	if !g.IsValid(p) {
		return 0
	}
	return g.table.Info(g.tiles[g.index(p)].Terrain).MoveCost
}

// BlocksVision reports whether the terrain at p is opaque.
// Out-of-bounds cells do not block.
func (g *Grid) BlocksVision(p Position) bool {
	if !g.IsValid(p) {
		return false
	}
	return g.table.Info(g.tiles[g.index(p)].Terrain).BlocksVision
}

// SetTerrain replaces the terrain kind at p, keeping its elevation.
func (g *Grid) SetTerrain(p Position, t Terrain) error {
	if !g.IsValid(p) {
		return fmt.Errorf("set terrain %s: %w", p, ErrOutOfBounds)
	}
	if !t.Valid() {
		return fmt.Errorf("set terrain %s: %w: %v", p, ErrUnknownTerrain, t)
	}
	g.tiles[g.index(p)].Terrain = t
	return nil
}

// SetElevation changes the elevation at p. Negative values are rejected.
func (g *Grid) SetElevation(p Position, e int) error {
	if !g.IsValid(p) {
		return fmt.Errorf("set elevation %s: %w", p, ErrOutOfBounds)
	}
	if e < 0 {
		return fmt.Errorf("set elevation %s: elevation %d must be >= 0", p, e)
	}
	g.tiles[g.index(p)].Elevation = e
	return nil
}

// FillRect sets the terrain of every in-bounds cell of the rectangle with
// top-left corner (x, y). Cells outside the grid are skipped.
func (g *Grid) FillRect(x, y, w, h int, t Terrain) {
	if !t.Valid() {
		return
	}
	for row := max(0, y); row < min(g.Height, y+h); row++ {
		for col := max(0, x); col < min(g.Width, x+w); col++ {
			g.tiles[row*g.Width+col].Terrain = t
		}
	}
}

// Count returns how many tiles carry terrain t.
func (g *Grid) Count(t Terrain) int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].Terrain == t {
			n++
		}
	}
	return n
}
