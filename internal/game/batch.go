package game

import "math"

// PositionBatch stores N positions column-wise: all x coordinates
// contiguous, then all y coordinates. Every batch method is element-wise
// identical to its scalar counterpart; the layout only exists so the inner
// loops run over flat int slices without per-element dispatch.
type PositionBatch struct {
	Xs []int
	Ys []int
}

// NewPositionBatch copies ps into column form.
func NewPositionBatch(ps []Position) *PositionBatch {
	b := &PositionBatch{
		Xs: make([]int, len(ps)),
		Ys: make([]int, len(ps)),
	}
	for i, p := range ps {
		b.Xs[i] = p.X
		b.Ys[i] = p.Y
	}
	return b
}

// GridBatch returns every cell of g in row-major order, so batch index i
// equals the grid's dense tile index.
func GridBatch(g *Grid) *PositionBatch {
	n := g.Width * g.Height
	b := &PositionBatch{Xs: make([]int, n), Ys: make([]int, n)}
	i := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			b.Xs[i] = x
			b.Ys[i] = y
			i++
		}
	}
	return b
}

// Len returns the number of positions in the batch.
func (b *PositionBatch) Len() int { return len(b.Xs) }

// At returns the i-th position.
func (b *PositionBatch) At(i int) Position { return Position{X: b.Xs[i], Y: b.Ys[i]} }

// Positions converts the batch back to row form.
func (b *PositionBatch) Positions() []Position {
	out := make([]Position, len(b.Xs))
	for i := range out {
		out[i] = Position{X: b.Xs[i], Y: b.Ys[i]}
	}
	return out
}

// DistancesTo returns the Euclidean distance of every position to t.
func (b *PositionBatch) DistancesTo(t Position) []float64 {
	out := make([]float64, len(b.Xs))
	xs, ys := b.Xs, b.Ys[:len(b.Xs)]
	for i := range xs {
		dx := float64(xs[i] - t.X)
		dy := float64(ys[i] - t.Y)
		out[i] = math.Sqrt(dx*dx + dy*dy)
	}
	return out
}

// ManhattanTo returns the Manhattan distance of every position to t.
func (b *PositionBatch) ManhattanTo(t Position) []int {
	out := make([]int, len(b.Xs))
	b.ManhattanInto(t, out)
	return out
}

// ManhattanInto writes Manhattan distances to t into dst, which must hold at
// least Len() elements, and returns the filled prefix.
func (b *PositionBatch) ManhattanInto(t Position, dst []int) []int {
	dst = dst[:len(b.Xs)]
	xs, ys := b.Xs, b.Ys[:len(b.Xs)]
	for i := range xs {
		dx := xs[i] - t.X
		dy := ys[i] - t.Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		dst[i] = dx + dy
	}
	return dst
}

// WithinBand marks positions whose Manhattan distance to t lies in [minR, maxR].
func (b *PositionBatch) WithinBand(t Position, minR, maxR int) []bool {
	d := b.ManhattanTo(t)
	out := make([]bool, len(d))
	for i, v := range d {
		out[i] = v >= minR && v <= maxR
	}
	return out
}

// Select returns the positions whose mask entry is true.
func (b *PositionBatch) Select(mask []bool) []Position {
	var out []Position
	for i, keep := range mask[:len(b.Xs)] {
		if keep {
			out = append(out, Position{X: b.Xs[i], Y: b.Ys[i]})
		}
	}
	return out
}

// TerrainMask marks every tile of kind t, indexed like GridBatch.
func (g *Grid) TerrainMask(t Terrain) []bool {
	out := make([]bool, len(g.tiles))
	for i := range g.tiles {
		out[i] = g.tiles[i].Terrain == t
	}
	return out
}

// FilterTerrain returns every cell of kind t in row-major order.
func (g *Grid) FilterTerrain(t Terrain) []Position {
	var out []Position
	for i := range g.tiles {
		if g.tiles[i].Terrain == t {
			out = append(out, g.positionAt(i))
		}
	}
	return out
}

// FilterTerrain returns every cell of kind t in row-major order.
func (m *BattleMap) FilterTerrain(t Terrain) []Position {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.grid.FilterTerrain(t)
}
