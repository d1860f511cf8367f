package game

// LineCells returns the Bresenham line from a to b, both ends included.
func LineCells(a, b Position) []Position {
	dx := absInt(b.X - a.X)
	dy := absInt(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy
	x, y := a.X, a.Y
	out := make([]Position, 0, max(dx, dy)+1)
	for {
		out = append(out, Position{X: x, Y: y})
		if x == b.X && y == b.Y {
			return out
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// HasLineOfSight returns true if no cell strictly between a and b carries
// vision-blocking terrain. Units never block sight. Both ends must be valid.
func (g *Grid) HasLineOfSight(a, b Position) bool {
	if !g.IsValid(a) || !g.IsValid(b) {
		return false
	}
	cells := LineCells(a, b)
	if len(cells) <= 2 {
		return true
	}
	for _, c := range cells[1 : len(cells)-1] {
		if g.BlocksVision(c) {
			return false
		}
	}
	return true
}

// HasLineOfSight reports whether a can see b over the current terrain.
func (m *BattleMap) HasLineOfSight(a, b Position) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.grid.HasLineOfSight(a, b)
}
