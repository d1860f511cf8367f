package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Position is a cell coordinate. Validity is always relative to a Grid.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add offsets p by (dx, dy).
func (p Position) Add(dx, dy int) Position { return Position{X: p.X + dx, Y: p.Y + dy} }

// orthogonal neighbour offsets; movement never uses diagonals.
var dirs4 = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Manhattan returns |dx| + |dy|.
func Manhattan(a, b Position) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

// Distance returns the Euclidean distance between two cells.
// PositionBatch.DistancesTo must produce bit-identical values.
func Distance(a, b Position) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PositionSet is the result type of every area query.
type PositionSet = mapset.Set[Position]

// NewPositionSet returns a set holding ps.
func NewPositionSet(ps ...Position) PositionSet {
	s := mapset.New[Position]()
	for _, p := range ps {
		s.Put(p)
	}
	return s
}

// SortedPositions returns the members of s ordered row-major (y, then x).
func SortedPositions(s PositionSet) []Position {
	out := make([]Position, 0, s.Size())
	s.Each(func(p Position) {
		out = append(out, p)
	})
	sortPositions(out)
	return out
}

func sortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

// SameSet reports whether a and b hold exactly the same positions.
func SameSet(a, b PositionSet) bool {
	if a.Size() != b.Size() {
		return false
	}
	same := true
	a.Each(func(p Position) {
		if !b.Has(p) {
			same = false
		}
	})
	return same
}
